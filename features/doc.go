// Package features holds the compile-time feature flags of the engine.
//
// Every flag is an untyped boolean constant declared twice, once in a file
// built with its tag and once in a file built without it. A binary built
// with
//
//	go build -tags necrosis_cheat_system ./...
//
// sees CheatSystemEnabled == true; without the tag it is false. There is no
// way to change a flag after the build.
//
// The _on.go, _off.go and flags_gen.go files are generated from
// features.yaml by cmd/featuregen. Add a flag there and run go generate.
package features
