// Package cli — check.go implements the "dhi-eol check" command.
//
// The check command is the primary flow: inspect the image's labels,
// detect a Docker Hardened Image base, and resolve its end-of-life date
// from the embedded label or from the Docker Scout catalog.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/shinji-kodama/dhi-eol/internal/config"
	"github.com/shinji-kodama/dhi-eol/internal/docker"
	"github.com/shinji-kodama/dhi-eol/internal/eol"
	"github.com/shinji-kodama/dhi-eol/internal/model"
	"github.com/shinji-kodama/dhi-eol/internal/scout"
)

// checkFlags holds the flag values for the check command.
type checkFlags struct {
	// offline restricts EOL resolution to the embedded label, never
	// contacting Docker Hub or the Scout API.
	offline bool

	// remote forces the Scout catalog lookup even when the image carries
	// an embedded EOL label, e.g. to cross-check a stale date.
	remote bool
}

// NewCheckCommand creates the "check" cobra command.
func NewCheckCommand() *cobra.Command {
	flags := &checkFlags{}

	cmd := &cobra.Command{
		Use:   "check IMAGE",
		Short: "Check whether an image derives from a DHI base and report its EOL",
		Long: `Check inspects the given image's labels, detects a Docker Hardened Image
base via the com.docker.dhi.url label, and reports the base's end-of-life
date.

The EOL date is read from the com.docker.dhi.eol label when present;
otherwise it is resolved via the Docker Scout catalog, which requires the
DOCKER_USERNAME and DOCKER_PAT environment variables.

The command exits 0 for every completed analysis — including "not a DHI"
and "image could not be inspected" — and exits 1 only for missing or
failed credentials. Use --json for a machine-readable verdict.

Examples:
  dhi-eol check myapp:latest
  dhi-eol check myapp:latest --offline
  dhi-eol check myapp:latest --remote
  dhi-eol check myapp:latest --json`,

		Args: cobra.ExactArgs(1),

		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd.Context(), args[0], flags)
		},
	}

	cmd.Flags().BoolVar(&flags.offline, "offline", false,
		"Resolve the EOL from the embedded label only, without contacting the Scout API")
	cmd.Flags().BoolVar(&flags.remote, "remote", false,
		"Resolve the EOL via the Scout catalog even when the embedded label is present")
	cmd.MarkFlagsMutuallyExclusive("offline", "remote")

	return cmd
}

// checkResult is the JSON output structure of the check command. It
// accumulates the findings of every step so that the --json output is a
// single self-contained verdict.
type checkResult struct {
	// Image is the reference as given on the command line.
	Image string `json:"image"`

	// Reference is the normalized repository/tag split of Image.
	Reference model.ImageRef `json:"reference"`

	// Inspected reports whether the label set could be read at all.
	Inspected bool `json:"inspected"`

	// Hardened reports whether the image carries the DHI URL label.
	Hardened bool `json:"hardened"`

	DHI        *model.DHIInfo `json:"dhi,omitempty"`
	BaseImage  string         `json:"baseImage,omitempty"`
	BaseDigest string         `json:"baseDigest,omitempty"`

	// EOLSource says where the EOL came from: "label" or "scout".
	EOLSource string `json:"eolSource,omitempty"`

	// Matched is the tag definition selected from the Scout catalog.
	Matched *model.TagDefinition `json:"matchedDefinition,omitempty"`

	// EndOfLife is the raw EOL string; empty means none was found.
	EndOfLife string `json:"endOfLife,omitempty"`

	// DaysRemaining is the signed day delta; nil when no valid EOL date
	// was resolved.
	DaysRemaining *int `json:"daysRemaining,omitempty"`

	PastEOL bool `json:"pastEol,omitempty"`

	// Warning is set when the EOL falls within the configured warning
	// window.
	Warning bool `json:"warning,omitempty"`

	// ParseWarning is set when EndOfLife could not be parsed as a date,
	// so machine consumers see the malformed value flagged rather than a
	// silently missing daysRemaining.
	ParseWarning string `json:"parseWarning,omitempty"`
}

// runCheck is the main logic function for the check command.
//
// Per the error handling contract, everything in this flow degrades to a
// reported finding with exit 0 — except missing credentials and failed
// authentication, which return a CLIError and exit 1.
func runCheck(ctx context.Context, image string, flags *checkFlags) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}

	result := &checkResult{
		Image:     image,
		Reference: model.ParseImageRef(image),
	}

	headerf("dhi-eol — analysing %q", image)

	// Step 1: retrieve the image's label set, pulling once if needed.
	headerf("Step 1: Inspecting image labels")
	labels := fetchLabels(ctx, image)
	if len(labels) == 0 {
		failf("Could not inspect image %q. Is it pulled locally?", image)
		return finishCheck(result)
	}
	result.Inspected = true

	// Step 2: hardened-image detection via the DHI URL label.
	info, hardened := docker.ExtractDHIInfo(labels)
	if !hardened {
		failf("This image is NOT based on a Docker Hardened Image.")
		infof("No %s label found.", docker.LabelDHIURL)
		return finishCheck(result)
	}
	result.Hardened = true
	result.DHI = &info
	result.BaseImage, result.BaseDigest = docker.ExtractBaseImage(labels)

	okf("This image is based on a Docker Hardened Image.")
	infof("%s: %s", docker.LabelDHIURL, boldText("%s", labels[docker.LabelDHIURL]))
	if v := labels[docker.LabelDHIVersion]; v != "" {
		infof("%s: %s", docker.LabelDHIVersion, boldText("%s", v))
	}
	infof("DHI repository: %s", boldText("%s", info.Repository))
	if info.Version != "" {
		infof("DHI version: %s", boldText("%s", info.Version))
	}
	if result.BaseImage != "" {
		infof("Base image: %s", result.BaseImage)
	}

	// Step 3, label source: the EOL is embedded in a label. --offline
	// forces this source even when the label is absent, in which case
	// absence means "no planned EOL".
	if selectEOLSource(labels, flags.offline, flags.remote) == sourceLabel {
		headerf("Step 2: Reading embedded EOL label")
		result.EOLSource = "label"
		eolLabel := labels[docker.LabelDHIEOL]
		if eolLabel == "" {
			okf("End of Life: not set (no planned EOL).")
			return finishCheck(result)
		}
		reportEOL(result, cfg, eolLabel)
		return finishCheck(result)
	}

	// Step 3, scout source: resolve via the Scout catalog. Authentication
	// problems are the one hard failure of the whole flow.
	headerf("Step 2: Authenticating with Docker Hub")
	creds, err := scout.CredentialsFromEnv()
	if err != nil {
		return err
	}
	token, err := scout.ExchangeToken(ctx, cfg.AuthURL, creds)
	if err != nil {
		return err
	}
	okf("Authentication successful.")

	headerf("Step 3: Fetching End of Life information")
	client := scout.NewClient(ctx, cfg.GraphQLURL, token)
	defs, err := client.TagDefinitions(ctx, info.Repository)
	if err != nil {
		warnf("Catalog lookup failed: %v", err)
		return finishCheck(result)
	}
	if len(defs) == 0 {
		warnf("No tag definitions found for repository %q.", info.Repository)
		return finishCheck(result)
	}

	matched, ok := scout.MatchTagDefinition(info.Version, defs)
	if !ok {
		warnf("No matching tag definition found for version %q.", info.Version)
		return finishCheck(result)
	}
	result.EOLSource = "scout"
	result.Matched = &matched

	okf("Matched tag definition: %s", boldText("%s", matched.DisplayName))
	infof("Tags: %s", strings.Join(matched.TagNames, ", "))

	if matched.EndOfLife == "" {
		okf("End of Life: not set (no planned EOL).")
		return finishCheck(result)
	}
	reportEOL(result, cfg, matched.EndOfLife)
	return finishCheck(result)
}

// fetchLabels connects to Docker and retrieves the image's label set.
// Every failure mode — no daemon, failed pull, uninspectable image —
// yields nil, which the caller reports as "could not inspect".
func fetchLabels(ctx context.Context, image string) map[string]string {
	c, err := docker.NewClient()
	if err != nil {
		log.Warn().Err(err).Msg("docker daemon unavailable")
		return nil
	}
	defer func() { _ = c.Close() }()

	if err := c.Ping(ctx); err != nil {
		log.Warn().Err(err).Msg("docker daemon not responding")
		return nil
	}

	return c.ImageLabels(ctx, image)
}

// eolSource identifies where the EOL date is resolved from.
type eolSource int

const (
	// sourceLabel: read the EOL from the embedded com.docker.dhi.eol label.
	sourceLabel eolSource = iota

	// sourceScout: look the EOL up in the Docker Scout catalog.
	sourceScout
)

// selectEOLSource decides which resolution source the check flow uses.
// --remote forces the catalog lookup, --offline forces the label, and
// without either flag the label wins whenever it is present (even empty,
// which reads as "no planned EOL"). The two flags are mutually exclusive
// at the command level.
func selectEOLSource(labels map[string]string, offline, remote bool) eolSource {
	if remote {
		return sourceScout
	}
	if _, present := labels[docker.LabelDHIEOL]; offline || present {
		return sourceLabel
	}
	return sourceScout
}

// eolVerdict classifies a resolved EOL date for presentation.
type eolVerdict int

const (
	// verdictOK: the EOL date is comfortably in the future.
	verdictOK eolVerdict = iota

	// verdictWarning: the EOL date falls within the warning window.
	verdictWarning

	// verdictPast: the EOL date has passed.
	verdictPast
)

// classifyEOL maps a signed day delta and a warning window to a verdict.
// A window of 0 disables the warning band entirely. The EOL day itself
// (delta 0) counts as still supported, but falls inside any enabled
// warning window.
func classifyEOL(daysRemaining, warnWithinDays int) eolVerdict {
	switch {
	case daysRemaining < 0:
		return verdictPast
	case warnWithinDays > 0 && daysRemaining <= warnWithinDays:
		return verdictWarning
	default:
		return verdictOK
	}
}

// reportEOL parses the resolved EOL string, fills the result, and prints
// the remaining/past-EOL verdict. A malformed date is a warning, never a
// fatal condition.
func reportEOL(result *checkResult, cfg config.Config, eolStr string) {
	result.EndOfLife = eolStr

	status, err := eol.StatusAt(eolStr, time.Now())
	if err != nil {
		result.ParseWarning = fmt.Sprintf("malformed EOL date %q: %v", eolStr, err)
		warnf("Malformed EOL date %q: %v", eolStr, err)
		return
	}

	days := status.DaysRemaining
	result.DaysRemaining = &days
	result.PastEOL = status.PastEOL()

	verdict := classifyEOL(days, cfg.WarnWithinDays)
	result.Warning = verdict == verdictWarning

	if jsonOutput {
		return
	}

	fmt.Printf("  %s %s\n", boldText("End of Life:"), yellowText("%s", eolStr))
	switch verdict {
	case verdictPast:
		fmt.Printf("  %s\n", redText("⚠ PAST EOL by %s", eol.FormatDays(days)))
	case verdictWarning:
		fmt.Printf("  %s\n", yellowText("%s remaining (within %d-day warning window)", eol.FormatDays(days), cfg.WarnWithinDays))
	default:
		fmt.Printf("  %s\n", greenText("%s remaining", eol.FormatDays(days)))
	}
}

// finishCheck emits the JSON result in --json mode and terminates the
// report with a blank line otherwise. It always returns nil: a completed
// analysis exits 0 regardless of the verdict.
func finishCheck(result *checkResult) error {
	if IsJSONOutput() {
		data, _ := json.MarshalIndent(result, "", "  ")
		fmt.Println(string(data))
		return nil
	}
	fmt.Println()
	return nil
}
