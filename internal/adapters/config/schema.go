package config

// Manifest document keys.
const (
	keyPublisher       = "publisher"
	keyProject         = "project"
	keyVersion         = "version"
	keyJava            = "java"
	keyOutputFolder    = "outputFolder"
	keySourceFiles     = "sourceFiles"
	keyMaximumErrors   = "maximumErrors"
	keyMaximumWarnings = "maximumWarnings"
	keyBootClasspath   = "bootClasspath"
	keyDependencies    = "dependencies"
)

// document is a decoded manifest before its fields are validated.
// Both JSON and YAML manifests decode into the same shape so that a field of the
// wrong type can be reported and replaced by its default instead of failing the load.
type document map[string]any
