package main

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"net/http"
	"os"
	"time"

	"github.com/cornelk/dicemachine"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const maxInputFileSize = 5 << 20

var allowedImageTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/jpg":  {},
	"image/png":  {},
}

type diceMachine struct {
	logger    *zap.Logger
	processor *dicemachine.Processor
	store     dicemachine.Store

	inputFileName  string
	outputFileName string
	csvFileName    string
	matrixFileName string
	htmlFileName   string

	sizing dicemachine.SizingMode
	params dicemachine.Parameters

	theme          dicemachine.Theme
	style          dicemachine.FaceStyle
	render         dicemachine.RenderOptions
	exportScale    int
	boardDimension int
	summary        dicemachine.SummaryOptions
}

// newDiceMachine reads the flags shared by all commands.
func newDiceMachine(cmd *cobra.Command, logger *zap.Logger) (*diceMachine, error) {
	themeName, _ := cmd.Flags().GetString("theme")
	theme, err := dicemachine.ParseTheme(themeName)
	if err != nil {
		return nil, err
	}

	style := theme.Style()
	colors, _ := cmd.Flags().GetStringSlice("colors")
	if len(colors) > 0 {
		style, err = dicemachine.ParseFaceColors(colors)
		if err != nil {
			return nil, err
		}
		if !style.LightnessOrdered() {
			logger.Warn("Face colors are not ordered from light to dark, the mosaic will not resemble the image")
		}
		logger.Debug("Custom face colors", zap.Float64("min_distance", style.MinFaceDistance()))
	}
	style.ShowPips, _ = cmd.Flags().GetBool("pips")

	m := &diceMachine{
		logger:    logger,
		processor: dicemachine.NewProcessor(logger),
		params:    dicemachine.DefaultParameters(),
		theme:     theme,
		style:     style,
		summary: dicemachine.SummaryOptions{
			DiceSizeMM: dicemachine.DefaultDiceSizeMM,
			DicePrice:  dicemachine.DefaultDicePrice,
		},
	}

	m.htmlFileName, _ = cmd.Flags().GetString("html")
	if storeDir, _ := cmd.Flags().GetString("store"); storeDir != "" {
		m.store = dicemachine.NewFileStore(storeDir)
	}

	m.render = dicemachine.RenderOptions{Theme: theme}
	m.render.MaxWidth, _ = cmd.Flags().GetFloat64("maxwidth")
	m.render.MaxHeight, _ = cmd.Flags().GetFloat64("maxheight")
	m.render.Zoom, _ = cmd.Flags().GetFloat64("zoom")
	if m.render.Zoom > dicemachine.MaxZoom {
		logger.Warn("Zoom limited", zap.Float64("zoom", m.render.Zoom), zap.Int("max", dicemachine.MaxZoom))
		m.render.Zoom = dicemachine.MaxZoom
	}
	m.render.Resolution, _ = cmd.Flags().GetInt("resolution")
	m.exportScale, _ = cmd.Flags().GetInt("exportscale")
	m.boardDimension, _ = cmd.Flags().GetInt("boarddimension")
	m.summary.DiceSizeMM, _ = cmd.Flags().GetFloat64("dicesize")
	m.summary.DicePrice, _ = cmd.Flags().GetFloat64("diceprice")

	return m, nil
}

// process converts the input image and writes all requested outputs.
func (m *diceMachine) process() {
	inputImage, err := m.readInput()
	if err != nil {
		m.logger.Error("Reading image file failed", zap.Error(err))
		return
	}

	imageBounds := inputImage.Bounds()
	m.logger.Info("Image pixels",
		zap.Int("width", imageBounds.Dx()),
		zap.Int("height", imageBounds.Dy()))

	startTime := time.Now()
	grid, err := m.processor.ProcessDecoded(inputImage, m.sizing, m.params)
	if err != nil {
		m.logger.Error("Processing image failed", zap.Error(err))
		return
	}
	m.logger.Info("Image processed", zap.Duration("duration", time.Since(startTime)))

	if m.store != nil {
		if err := dicemachine.SaveGrid(m.store, grid); err != nil {
			m.logger.Error("Storing grid failed", zap.Error(err))
		}
	}

	m.writeOutputs(grid)
}

// export writes the outputs of the grid kept in the store.
func (m *diceMachine) export() {
	if m.store == nil {
		m.logger.Error("No store directory given")
		return
	}

	grid, ok := dicemachine.LoadGrid(m.store)
	if !ok {
		m.logger.Info("No stored grid found, process an image first")
		return
	}

	if m.matrixFileName != "" {
		content, err := dicemachine.ExportMatrixCSV(grid)
		if err != nil {
			m.logger.Error("Exporting grid failed", zap.Error(err))
			return
		}
		if err := os.WriteFile(m.matrixFileName, []byte(content), 0o644); err != nil {
			m.logger.Error("Writing grid CSV file failed", zap.Error(err))
			return
		}
		m.logger.Info("Grid CSV written", zap.String("file", m.matrixFileName))
	}

	m.writeOutputs(grid)
}

// readInput checks type and size of the input file before decoding it.
func (m *diceMachine) readInput() (image.Image, error) {
	data, err := os.ReadFile(m.inputFileName)
	if err != nil {
		return nil, fmt.Errorf("reading image file: %w", err)
	}
	if len(data) > maxInputFileSize {
		return nil, fmt.Errorf("image file has %d bytes, the limit is %d", len(data), maxInputFileSize)
	}

	contentType := http.DetectContentType(data)
	if _, ok := allowedImageTypes[contentType]; !ok {
		return nil, fmt.Errorf("unsupported image type %s", contentType)
	}

	return dicemachine.DecodeImage(bytes.NewReader(data))
}

// writeOutputs logs the dice usage and writes the rendered and tabular outputs.
func (m *diceMachine) writeOutputs(grid dicemachine.Grid) {
	m.logSummary(grid)

	if m.csvFileName != "" {
		content, err := dicemachine.ExportCSV(grid)
		if err != nil {
			m.logger.Error("Exporting CSV failed", zap.Error(err))
			return
		}
		if err := os.WriteFile(m.csvFileName, []byte(content), 0o644); err != nil {
			m.logger.Error("Writing CSV file failed", zap.Error(err))
			return
		}
		m.logger.Info("CSV written", zap.String("file", m.csvFileName))
	}

	if m.htmlFileName != "" {
		if err := m.writeHTML(grid); err != nil {
			m.logger.Error("Writing HTML file failed", zap.Error(err))
			return
		}
		m.logger.Info("HTML assembly sheet written", zap.String("file", m.htmlFileName))
	}

	if m.outputFileName == "" {
		return
	}

	outputImage, err := dicemachine.Render(grid, m.style, m.render)
	if err != nil {
		var renderErr *dicemachine.RenderContextError
		if errors.As(err, &renderErr) {
			m.logger.Error("Drawing surface not available for the viewport", zap.Error(err))
			return
		}
		m.logger.Error("Rendering mosaic failed", zap.Error(err))
		return
	}

	outputBounds := outputImage.Bounds()
	m.logger.Info("Output image pixels",
		zap.Int("width", outputBounds.Dx()*max(1, m.exportScale)),
		zap.Int("height", outputBounds.Dy()*max(1, m.exportScale)))

	if err := dicemachine.WritePNGFile(m.outputFileName, outputImage, m.exportScale); err != nil {
		m.logger.Error("Writing png file failed", zap.Error(err))
		return
	}
	m.logger.Info("Mosaic written", zap.String("file", m.outputFileName))
}

func (m *diceMachine) writeHTML(grid dicemachine.Grid) error {
	htmlFile, err := os.Create(m.htmlFileName)
	if err != nil {
		return fmt.Errorf("creating html file: %w", err)
	}

	if err := dicemachine.WriteHTML(htmlFile, grid, m.style, m.boardDimension); err != nil {
		_ = htmlFile.Close()
		return err
	}
	return htmlFile.Close()
}

// logSummary logs the dice usage like a shopping list.
func (m *diceMachine) logSummary(grid dicemachine.Grid) {
	s := dicemachine.Summarize(grid, m.summary)

	m.logger.Info("Dice grid",
		zap.Int("width", s.Width),
		zap.Int("height", s.Height),
		zap.Int("dice", s.Total))
	m.logger.Info("Mosaic measurement in cm",
		zap.Float64("width", s.WidthCM),
		zap.Float64("height", s.HeightCM))
	for face := dicemachine.MinFace; face <= dicemachine.MaxFace; face++ {
		m.logger.Info("Dice used", zap.Int("face", face), zap.Int("count", s.Counts[face]))
	}
	m.logger.Info("Estimate",
		zap.Float64("cost", s.Cost),
		zap.Duration("assembly", s.AssemblyTime))
	m.logger.Debug("Face distribution",
		zap.Float64("mean", s.MeanFace),
		zap.Float64("stddev", s.StdDevFace),
		zap.Int("white", s.WhiteDice),
		zap.Int("black", s.BlackDice))
}
