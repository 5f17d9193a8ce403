// package formatter renders playlists for display and exports them to CSV, Markdown and plain text
package formatter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/desertthunder/tunelist/internal/models"
	"golang.org/x/text/language"
)

// FormatDuration renders milliseconds as m:ss. Negative input renders as 0:00.
func FormatDuration(ms int) string {
	if ms < 0 {
		ms = 0
	}
	return fmt.Sprintf("%d:%02d", ms/60000, (ms%60000)/1000)
}

// TotalMinutes sums track durations and truncates to whole minutes.
func TotalMinutes(tracks []models.Track) int {
	total := 0
	for _, t := range tracks {
		if t.DurationMs > 0 {
			total += t.DurationMs
		}
	}
	return total / 60000
}

// FormatDate renders a creation date for locale ("ko" or English). Short drops the year.
//
// The zero time renders as the empty string.
func FormatDate(ts models.Timestamp, locale string, short bool) string {
	if ts.IsZero() {
		return ""
	}

	t := ts.Time
	if korean(locale) {
		if short {
			return fmt.Sprintf("%d월 %d일", t.Month(), t.Day())
		}
		return fmt.Sprintf("%d년 %d월 %d일", t.Year(), t.Month(), t.Day())
	}

	if short {
		return t.Format("Jan 2")
	}
	return t.Format("Jan 2, 2006")
}

func korean(locale string) bool {
	base, _ := language.Make(locale).Base()
	ko, _ := language.Korean.Base()
	return base == ko
}

// CoverKind describes how a playlist cover is laid out.
type CoverKind int

const (
	CoverPlaceholder CoverKind = iota
	CoverSingle
	CoverGrid
)

func (k CoverKind) String() string {
	switch k {
	case CoverSingle:
		return "single"
	case CoverGrid:
		return "grid"
	default:
		return "placeholder"
	}
}

// Cover is the collage chosen for a playlist.
type Cover struct {
	Kind   CoverKind
	Images []string
}

// CoverImages picks album art from the first four tracks: four images form a 2x2 grid,
// one to three show the first image alone, none shows a placeholder.
func CoverImages(tracks []models.Track) Cover {
	n := min(len(tracks), 4)
	images := make([]string, 0, n)
	for _, t := range tracks[:n] {
		images = append(images, t.AlbumImageURL)
	}

	switch {
	case len(images) >= 4:
		return Cover{Kind: CoverGrid, Images: images}
	case len(images) > 0:
		return Cover{Kind: CoverSingle, Images: images[:1]}
	default:
		return Cover{Kind: CoverPlaceholder}
	}
}

func trackID(t models.Track) string {
	if t.ID == nil {
		return ""
	}
	return strconv.FormatInt(*t.ID, 10)
}

// ExportToCSV converts a playlist's tracks to CSV with columns: ID, Title, Artist, Duration, AlbumImageURL
func ExportToCSV(playlist models.Playlist) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Title", "Artist", "Duration", "AlbumImageURL"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, track := range playlist.Tracks {
		record := []string{
			trackID(track),
			track.Title,
			track.Artist,
			FormatDuration(track.DurationMs),
			track.AlbumImageURL,
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts a playlist to Markdown with an optional cover image
func ExportToMarkdown(playlist models.Playlist, imageFilename string) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# %s\n\n", playlist.Title))

	if imageFilename != "" {
		buf.WriteString(fmt.Sprintf("![Cover](%s)\n\n", imageFilename))
	}

	if playlist.Description != "" {
		buf.WriteString(fmt.Sprintf("**Description**: %s\n\n", playlist.Description))
	}

	buf.WriteString(fmt.Sprintf("**Tracks**: %d\n", len(playlist.Tracks)))
	buf.WriteString(fmt.Sprintf("**Length**: %d min\n", TotalMinutes(playlist.Tracks)))
	if created := FormatDate(playlist.CreatedAt, "en", false); created != "" {
		buf.WriteString(fmt.Sprintf("**Created**: %s\n", created))
	}
	buf.WriteString("\n## Tracks\n\n")

	for i, track := range playlist.Tracks {
		buf.WriteString(fmt.Sprintf("%d. %s - %s [%s]\n", i+1, track.Artist, track.Title, FormatDuration(track.DurationMs)))
	}

	return buf.Bytes(), nil
}

// ExportToText converts a playlist to plain text format
func ExportToText(playlist models.Playlist) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Playlist: %s\n", playlist.Title))
	if playlist.Description != "" {
		buf.WriteString(fmt.Sprintf("Description: %s\n", playlist.Description))
	}
	buf.WriteString(fmt.Sprintf("Tracks: %d\n\n", len(playlist.Tracks)))

	for i, track := range playlist.Tracks {
		buf.WriteString(fmt.Sprintf("%d. %s - %s\n", i+1, track.Artist, track.Title))
	}

	return buf.Bytes(), nil
}

// DownloadImage downloads an image from the given URL and returns the raw bytes
func DownloadImage(url string) ([]byte, error) {
	if url == "" {
		return nil, fmt.Errorf("empty URL provided")
	}

	client := &http.Client{
		Timeout: 30 * time.Second,
	}

	resp, err := client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to download image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to download image: status %d", resp.StatusCode)
	}

	imageData, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read image data: %w", err)
	}

	return imageData, nil
}

// ToMetadataJSON generates a JSON representation of playlist metadata (without tracks)
func ToMetadataJSON(playlist models.Playlist) ([]byte, error) {
	playlist.Tracks = nil
	data, err := json.MarshalIndent(playlist, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal metadata: %w", err)
	}
	return data, nil
}

func defaultBase(playlist models.Playlist) string {
	return fmt.Sprintf("playlist_%d", playlist.ID)
}

// CSVExportResult contains the paths of files created by WriteCSVExport
type CSVExportResult struct {
	TracksFile   string
	MetadataFile string
}

// WriteCSVExport exports a playlist to CSV format with accompanying metadata JSON file.
//
// Defaults to playlist_{id} as the base filename & creates {base}_tracks.csv and {base}_metadata.json
func WriteCSVExport(playlist models.Playlist, baseFilepath string) (*CSVExportResult, error) {
	if baseFilepath == "" {
		baseFilepath = defaultBase(playlist)
	}

	csvData, err := ExportToCSV(playlist)
	if err != nil {
		return nil, fmt.Errorf("failed to generate CSV: %w", err)
	}

	tracksFile := baseFilepath + "_tracks.csv"
	if err := os.WriteFile(tracksFile, csvData, 0644); err != nil {
		return nil, fmt.Errorf("failed to write CSV file: %w", err)
	}

	metadataJSON, err := ToMetadataJSON(playlist)
	if err != nil {
		return nil, fmt.Errorf("failed to generate metadata JSON: %w", err)
	}

	metadataFile := baseFilepath + "_metadata.json"
	if err := os.WriteFile(metadataFile, metadataJSON, 0644); err != nil {
		return nil, fmt.Errorf("failed to write metadata file: %w", err)
	}

	return &CSVExportResult{
		TracksFile:   tracksFile,
		MetadataFile: metadataFile,
	}, nil
}

// MarkdownExportResult contains information about files created by WriteMarkdownExport
type MarkdownExportResult struct {
	Directory  string
	Files      []string
	CoverImage string
	Warnings   []string
}

// WriteMarkdownExport exports a playlist to Markdown format in a dedicated directory.
//
// Directory name defaults to playlist_{id}. When download is set the first cover image is
// fetched; a failed download is reported in Warnings and does not fail the export.
// Creates a directory structure: {dir}/README.md and optionally {dir}/cover.jpg
func WriteMarkdownExport(playlist models.Playlist, outputDir string, download bool) (*MarkdownExportResult, error) {
	if outputDir == "" {
		outputDir = defaultBase(playlist)
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	result := &MarkdownExportResult{
		Directory: outputDir,
		Files:     []string{},
	}

	var coverImageFilename string
	if cover := CoverImages(playlist.Tracks); download && cover.Kind != CoverPlaceholder && cover.Images[0] != "" {
		imageData, err := DownloadImage(cover.Images[0])
		if err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("failed to download cover image: %v", err))
		} else {
			coverImageFilename = "cover.jpg"
			coverImagePath := filepath.Join(outputDir, coverImageFilename)
			if err := os.WriteFile(coverImagePath, imageData, 0644); err != nil {
				result.Warnings = append(result.Warnings, fmt.Sprintf("failed to save cover image: %v", err))
				coverImageFilename = ""
			} else {
				result.CoverImage = coverImagePath
				result.Files = append(result.Files, coverImagePath)
			}
		}
	}

	mdData, err := ExportToMarkdown(playlist, coverImageFilename)
	if err != nil {
		return nil, fmt.Errorf("failed to generate Markdown: %w", err)
	}

	mdFile := filepath.Join(outputDir, "README.md")
	if err := os.WriteFile(mdFile, mdData, 0644); err != nil {
		return nil, fmt.Errorf("failed to write Markdown file: %w", err)
	}

	result.Files = append(result.Files, mdFile)

	return result, nil
}

// WriteTextExport exports a playlist to plain text format.
//
// Defaults to playlist_{id}_tracks.txt as the filename.
func WriteTextExport(playlist models.Playlist, path string) (string, error) {
	if path == "" {
		path = defaultBase(playlist) + "_tracks.txt"
	}

	textData, err := ExportToText(playlist)
	if err != nil {
		return "", fmt.Errorf("failed to generate text: %w", err)
	}

	if err := os.WriteFile(path, textData, 0644); err != nil {
		return "", fmt.Errorf("failed to write text file: %w", err)
	}

	return path, nil
}
