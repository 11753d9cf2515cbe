// Package config loads the YAML configuration of the cgmdust command.
//
// A minimal file:
//
//	profile:
//	  alpha: -0.8
//	cosmology:
//	  preset: planck18
//	storage:
//	  backend: local
//	  root: ./results
//
// Missing sections keep the values of Default.
package config
