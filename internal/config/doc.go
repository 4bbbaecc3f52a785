// Package config defines the wizard's runtime settings, the deployment record
// collected from the operator, and validation of the generated container
// configuration.
//
// [Settings] is loaded with viper from flags, DISCOURSE_SETUP_* environment
// variables and an optional discourse-setup.yaml. [Deployment] is the single
// mutable record passed through the setup pipeline. [ValidateFile] re-reads
// the written document and checks every required field.
package config
