// Package provider drives a build through its two plugin phases.
//
// Phase one hands every plugin the mutable chain. Phase two runs after the
// chain has been materialized and lets plugins edit or prune the final
// BundlerConfig, so a phase-two hook sees every registration made in phase
// one regardless of plugin order.
package provider
