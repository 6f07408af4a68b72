package cmd

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/helmcode/agridetect/pkg/api"
	"github.com/helmcode/agridetect/pkg/flow"
	"github.com/helmcode/agridetect/pkg/formatter"
	"github.com/helmcode/agridetect/pkg/i18n"
	"github.com/helmcode/agridetect/pkg/view"
	"github.com/spf13/cobra"
)

var detectCrop string

func NewDetectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "detect IMAGE",
		Short: "Detect crop disease from a leaf photo",
		Long: `Upload a leaf photo to the AgriDetect API and show the detected disease,
confidence, treatments and prevention advice.

Examples:
  # Analyze a photo
  agridetect detect ./leaf.jpg

  # Tell the server which crop the photo shows
  agridetect detect ./leaf.jpg --crop Tomato

  # Machine-readable output
  agridetect detect ./leaf.jpg -o json`,
		Args: cobra.ExactArgs(1),
		RunE: runDetect,
	}

	cmd.Flags().StringVar(&detectCrop, "crop", "", "Crop shown in the photo (e.g., Tomato)")

	return cmd
}

func runDetect(cmd *cobra.Command, args []string) error {
	s, err := loadSetup()
	if err != nil {
		return err
	}

	file, err := readImage(args[0])
	if err != nil {
		return err
	}

	detection := flow.NewDetectionFlow(s.client, s.catalog)
	detection.CropType = detectCrop
	if !detection.State.Drop(file) {
		return errors.New(s.catalog.T(i18n.NotAnImage) + ": " + file.MediaType)
	}

	out := cmd.OutOrStdout()
	printHeader(out, "🌾 AgriDetect",
		fmt.Sprintf("🖼️  Image: %s (%d bytes)", file.Name, len(file.Data)),
		fmt.Sprintf("🌐 API: %s", s.client.BaseURL()),
	)

	sp := newSpinner("Analyzing image...")
	sp.Start()
	ok := detection.Analyze(contextOrBackground(cmd.Context()))
	sp.Stop()

	if !ok {
		printError(detection.State.ErrorMessage)
		return ErrSilent
	}
	printSuccess(out, "Analysis complete")

	return formatter.DisplayDetection(out, detection.State.Result, s.catalog, outputFormat)
}

// readImage loads path and sniffs its media type, falling back to the
// extension when the content is not recognized.
func readImage(path string) (*view.File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}
	mediaType := http.DetectContentType(data)
	if mediaType == "application/octet-stream" {
		mediaType = api.ContentTypeFor(path)
	}
	return &view.File{Name: filepath.Base(path), MediaType: mediaType, Data: data}, nil
}
