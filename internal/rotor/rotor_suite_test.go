package rotor_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestRotor(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Rotor Model Suite")
}
