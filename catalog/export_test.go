package catalog

// CreateSpecies exposes the conflict-retry create path to tests.
var CreateSpecies = (*Resolver).create
