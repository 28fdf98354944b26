// Package api provides the REST API server for texttomidi
package api

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/JustJoshinDev/TextToMidi/pkg/converter"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title TextToMidi API
// @version 1.0
// @description API for compiling text music notation into MIDI files
// @host localhost:8080
// @BasePath /api/v1

// StartServer starts the API server on the specified port
func StartServer(port int) error {
	r := gin.Default()

	// CORS middleware
	r.Use(corsMiddleware())

	// Health check
	r.GET("/health", healthCheck)

	// API v1 routes
	v1 := r.Group("/api/v1")
	{
		v1.GET("/health", healthCheck)
		v1.POST("/convert", handleConvert)
		v1.POST("/parse", handleParse)
		v1.GET("/syntax", notationSyntax)
	}

	// Swagger docs
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r.Run(fmt.Sprintf(":%d", port))
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// healthCheck godoc
// @Summary Health check endpoint
// @Description Returns the health status of the API
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "texttomidi",
	})
}

// notationSyntax godoc
// @Summary Notation reference
// @Description Returns the text notation grammar: line format, pitch letters, accidentals and rest forms
// @Tags info
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/syntax [get]
func notationSyntax(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"line":         "notes duration [velocity]",
		"notes":        "comma-separated note tokens forming a chord, e.g. C4,E4,G4",
		"note":         "pitch letter A-G, optional # or b, single octave digit 0-9",
		"rest":         []string{"R", "Rest"},
		"duration":     "beats as a decimal number, e.g. 1.0 or 0.5",
		"velocity":     "optional integer 0-127, default 64",
		"example":      "C4,E4,G4 2.0 100",
		"defaultBpm":   converter.DefaultBPM,
		"ticksPerBeat": converter.DefaultTicksPerBeat,
	})
}

// readScoreText extracts the notation text from a multipart upload or the
// raw request body.
func readScoreText(c *gin.Context) (string, string, error) {
	if file, header, err := c.Request.FormFile("file"); err == nil {
		defer func() { _ = file.Close() }()
		data, err := io.ReadAll(file)
		if err != nil {
			return "", "", fmt.Errorf("failed to read file: %w", err)
		}
		return string(data), header.Filename, nil
	}

	data, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return "", "", fmt.Errorf("failed to read request body: %w", err)
	}
	return string(data), "score.txt", nil
}

func requestBPM(c *gin.Context) int {
	bpm, err := strconv.Atoi(c.DefaultQuery("bpm", strconv.Itoa(converter.DefaultBPM)))
	if err != nil || bpm <= 0 {
		return converter.DefaultBPM
	}
	return bpm
}

// handleConvert godoc
// @Summary Compile notation to MIDI
// @Description Upload notation text (multipart "file" field or raw body) and receive a MIDI file
// @Tags convert
// @Accept multipart/form-data
// @Produce audio/midi
// @Param file formData file false "Notation text file"
// @Param bpm query int false "Tempo in beats per minute (default: 90)"
// @Success 200 {file} binary
// @Failure 400 {object} map[string]string
// @Router /api/v1/convert [post]
func handleConvert(c *gin.Context) {
	text, filename, err := readScoreText(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comp := converter.NewCompiler()
	data, err := comp.Compile(text, requestBPM(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	outputName := strings.TrimSuffix(filename, ".txt") + ".mid"
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", outputName))
	c.Data(http.StatusOK, "audio/midi", data)
}

// handleParse godoc
// @Summary Parse notation without encoding
// @Description Upload notation text and receive the parsed score with diagnostics as JSON
// @Tags convert
// @Accept multipart/form-data
// @Produce json
// @Param file formData file false "Notation text file"
// @Param bpm query int false "Tempo in beats per minute (default: 90)"
// @Success 200 {object} converter.Score
// @Failure 400 {object} map[string]string
// @Router /api/v1/parse [post]
func handleParse(c *gin.Context) {
	text, _, err := readScoreText(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comp := converter.NewCompiler()
	c.JSON(http.StatusOK, comp.ParseScore(text, requestBPM(c)))
}
