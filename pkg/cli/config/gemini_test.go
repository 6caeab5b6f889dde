package config_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/threekidsinatrenchcoat/giftwise/pkg/cli/config"
)

func TestGemini_Configure(t *testing.T) {
	t.Run("fails when project ID is empty", func(t *testing.T) {
		cfg := config.NewGeminiForTest("", "us-central1")
		client, err := cfg.Configure(t.Context())
		gt.Error(t, err)
		gt.Value(t, client).Nil()
	})

	t.Run("returns flags", func(t *testing.T) {
		cfg := config.NewGeminiForTest("", "")
		flags := cfg.Flags()
		gt.Value(t, len(flags)).Equal(2)
	})
}
