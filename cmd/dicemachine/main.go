package main

import (
	"fmt"

	"github.com/cornelk/dicemachine"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "dicemachine -i file.jpg",
		Short: "Dice mosaic creator",
		Run:   startDiceMachine,
	}

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")

	// files
	rootCmd.Flags().StringP("input", "i", "", "image to process (JPEG or PNG)")
	rootCmd.Flags().StringP("output", "o", "", "output filename for the rendered PNG mosaic")
	rootCmd.Flags().StringP("csv", "c", "", "output filename for the dice position CSV file")
	rootCmd.Flags().StringP("html", "l", "", "output filename for a HTML based assembly sheet")
	rootCmd.PersistentFlags().StringP("store", "s", "", "directory that keeps the last grid for the export command")

	// dimensions
	rootCmd.Flags().StringP("size", "g", "auto", "grid size: auto, N or WxH")
	rootCmd.Flags().IntP("width", "w", 0, "grid width in dice, overrides size together with height")
	rootCmd.Flags().IntP("height", "e", 0, "grid height in dice, overrides size together with width")

	// filters
	rootCmd.Flags().Int("contrast", dicemachine.DefaultContrast, "contrast adjustment (0 - 100)")
	rootCmd.Flags().Bool("widecontrast", false, "interpret contrast on the extended 0 - 250 scale")
	rootCmd.Flags().Int("brightness", dicemachine.DefaultBrightness, "brightness adjustment (0 - 100, 50 is neutral)")
	rootCmd.Flags().Bool("invert", false, "invert the dice values, defaults to true for the black theme")

	addRenderFlags(rootCmd)

	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Export the grid kept in the store",
		Run:   startExport,
	}
	exportCmd.Flags().StringP("output", "o", "", "output filename for the rendered PNG mosaic")
	exportCmd.Flags().StringP("csv", "c", "", "output filename for the grid matrix CSV file")
	exportCmd.Flags().StringP("html", "l", "", "output filename for a HTML based assembly sheet")
	addRenderFlags(exportCmd)

	sampleCmd := &cobra.Command{
		Use:   "sample",
		Short: "Render a gradient sample mosaic",
		Run:   startSample,
	}
	sampleCmd.Flags().StringP("output", "o", dicemachine.ImageFileName, "output filename for the rendered PNG mosaic")
	sampleCmd.Flags().IntP("width", "w", 40, "grid width in dice")
	sampleCmd.Flags().IntP("height", "e", 30, "grid height in dice")
	addRenderFlags(sampleCmd)

	rootCmd.AddCommand(exportCmd, sampleCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Printf("ERROR: %v\n", err)
	}
}

func addRenderFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("theme", "t", string(dicemachine.ThemeMixed), "dice theme: mixed, black or white")
	cmd.Flags().StringSlice("colors", nil, "six hex colors for the faces 1 to 6, overrides the theme colors")
	cmd.Flags().BoolP("pips", "p", true, "draw the dice pips")
	cmd.Flags().Float64("maxwidth", 800, "viewport width of the mosaic")
	cmd.Flags().Float64("maxheight", 600, "viewport height of the mosaic")
	cmd.Flags().Float64P("zoom", "z", 1, "zoom factor of the mosaic cells, at most 5")
	cmd.Flags().Int("resolution", 0, "pixel per viewport unit, 0 picks one based on the zoom")
	cmd.Flags().Int("exportscale", dicemachine.ExportScaleCalculator, "additional upscale of the exported PNG")
	cmd.Flags().IntP("boarddimension", "d", dicemachine.DefaultBoardDimension, "dice per side of an assembly board")
	cmd.Flags().Float64("dicesize", dicemachine.DefaultDiceSizeMM, "edge length of a die in mm")
	cmd.Flags().Float64("diceprice", dicemachine.DefaultDicePrice, "price of a single die")
}

func startDiceMachine(cmd *cobra.Command, _ []string) {
	inputFileName, _ := cmd.Flags().GetString("input")
	if inputFileName == "" {
		_ = cmd.Help()
		return
	}

	logger := logger(cmd)

	m, err := newDiceMachine(cmd, logger)
	if err != nil {
		logger.Error("Invalid arguments", zap.Error(err))
		return
	}
	m.inputFileName = inputFileName
	m.outputFileName, _ = cmd.Flags().GetString("output")
	m.csvFileName, _ = cmd.Flags().GetString("csv")

	sizing, _ := cmd.Flags().GetString("size")
	m.sizing, err = dicemachine.ParseSizingMode(sizing)
	if err != nil {
		logger.Error("Invalid grid size", zap.Error(err))
		return
	}
	width, _ := cmd.Flags().GetInt("width")
	height, _ := cmd.Flags().GetInt("height")
	if width > 0 && height > 0 {
		m.sizing = dicemachine.Custom(width, height)
	}

	contrast, _ := cmd.Flags().GetInt("contrast")
	if wide, _ := cmd.Flags().GetBool("widecontrast"); wide {
		contrast = dicemachine.ContrastFromWideScale(contrast)
	}
	m.params.Contrast = contrast
	m.params.Brightness, _ = cmd.Flags().GetInt("brightness")
	m.params.Invert = m.theme.Inverts()
	if cmd.Flags().Changed("invert") {
		m.params.Invert, _ = cmd.Flags().GetBool("invert")
	}

	m.process()
}

func startExport(cmd *cobra.Command, _ []string) {
	logger := logger(cmd)

	m, err := newDiceMachine(cmd, logger)
	if err != nil {
		logger.Error("Invalid arguments", zap.Error(err))
		return
	}
	m.outputFileName, _ = cmd.Flags().GetString("output")
	m.matrixFileName, _ = cmd.Flags().GetString("csv")

	m.export()
}

func startSample(cmd *cobra.Command, _ []string) {
	logger := logger(cmd)

	m, err := newDiceMachine(cmd, logger)
	if err != nil {
		logger.Error("Invalid arguments", zap.Error(err))
		return
	}
	m.outputFileName, _ = cmd.Flags().GetString("output")

	width, _ := cmd.Flags().GetInt("width")
	height, _ := cmd.Flags().GetInt("height")
	if width < 1 || height < 1 {
		logger.Error("Invalid sample size", zap.Int("width", width), zap.Int("height", height))
		return
	}

	m.writeOutputs(dicemachine.SampleGrid(width, height))
}

func logger(cmd *cobra.Command) *zap.Logger {
	config := zap.NewDevelopmentConfig()
	config.Development = false
	config.DisableCaller = true
	config.DisableStacktrace = true

	level := config.Level
	verbose, _ := cmd.Flags().GetBool("verbose")
	if verbose {
		level.SetLevel(zap.DebugLevel)
	} else {
		level.SetLevel(zap.InfoLevel)
	}

	log, _ := config.Build()
	return log
}
