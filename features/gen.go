package features

//go:generate go run ../cmd/featuregen --manifest features.yaml --out .
