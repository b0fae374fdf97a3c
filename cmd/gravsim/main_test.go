package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	. "github.com/onsi/gomega"
	"github.com/spf13/cobra"

	"github.com/san-kum/gravsim/internal/config"
	"github.com/san-kum/gravsim/internal/systems"
)

func scenarioCmd(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	preset, configFile = "", ""
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().StringVar(&dataDir, "data", config.DefaultDataDir, "")
	addScenarioFlags(cmd)
	if err := cmd.ParseFlags(args); err != nil {
		t.Fatal(err)
	}
	return cmd
}

func TestResolveConfig_Defaults(t *testing.T) {
	g := NewWithT(t)
	cfg, err := resolveConfig(scenarioCmd(t), nil)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(cfg.Scenario).To(Equal(config.DefaultScenario))
	g.Expect(cfg.Steps).To(Equal(config.DefaultSteps))
	g.Expect(cfg.Seed).To(Equal(int64(1)))
}

func TestResolveConfig_PresetThenFlags(t *testing.T) {
	g := NewWithT(t)
	cmd := scenarioCmd(t, "--preset", "eccentric", "--steps", "50", "--seed", "9")
	cfg, err := resolveConfig(cmd, []string{systems.KindOrbital})
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(cfg.Orbital.VelocityMultiplier).To(Equal(1.2))
	g.Expect(cfg.Steps).To(Equal(50))
	g.Expect(cfg.Seed).To(Equal(int64(9)))
}

func TestResolveConfig_FileOverPreset(t *testing.T) {
	g := NewWithT(t)
	path := filepath.Join(t.TempDir(), "gravsim.yaml")
	g.Expect(os.WriteFile(path, []byte("steps: 321\ncloud:\n  count: 7\n"), 0644)).To(Succeed())

	cmd := scenarioCmd(t, "--preset", "sparse", "--config", path)
	cfg, err := resolveConfig(cmd, []string{systems.KindCloud})
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(cfg.Scenario).To(Equal(systems.KindCloud))
	g.Expect(cfg.Steps).To(Equal(321))
	g.Expect(cfg.Cloud.Count).To(Equal(7))
}

func TestResolveConfig_Errors(t *testing.T) {
	g := NewWithT(t)

	_, err := resolveConfig(scenarioCmd(t, "--preset", "nope"), nil)
	g.Expect(err).To(MatchError(ContainSubstring("unknown preset")))

	_, err = resolveConfig(scenarioCmd(t), []string{"galaxy"})
	g.Expect(err).To(HaveOccurred())

	_, err = resolveConfig(scenarioCmd(t, "--speed", "-5"), nil)
	g.Expect(err).To(HaveOccurred())
}

func TestSetupLogger(t *testing.T) {
	g := NewWithT(t)
	var buf bytes.Buffer

	logLevel = "warn"
	g.Expect(setupLogger(&buf)).To(Succeed())
	log.Info().Msg("hidden")
	log.Warn().Msg("shown")
	g.Expect(buf.String()).NotTo(ContainSubstring("hidden"))
	g.Expect(buf.String()).To(ContainSubstring("shown"))

	logLevel = "loud"
	g.Expect(setupLogger(&buf)).NotTo(Succeed())
	logLevel = "info"
}
