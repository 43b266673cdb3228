//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Build compiles the ankiforge binary
func Build() error {
	fmt.Println("Building ankiforge...")
	return sh.RunV("go", "build", "-o", "ankiforge", "./cmd/ankiforge")
}

// Test runs all tests
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Vet runs go vet on the module
func Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Check runs vet and the test suite
func Check() {
	mg.SerialDeps(Vet, Test)
}

// Install builds and installs the binary into GOPATH/bin
func Install() error {
	mg.Deps(Build)
	return sh.RunV("go", "install", "./cmd/ankiforge")
}

// Clean removes build artifacts
func Clean() error {
	return sh.Rm("ankiforge")
}
