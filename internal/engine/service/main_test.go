package service

import (
	"os"
	"testing"

	"github.com/pulseplan/pulseplan/pkg/log"
)

func TestMain(m *testing.M) {
	if err := log.Init(log.SetDefaults()); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}
