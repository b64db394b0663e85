package formatter

import (
	"strings"
	"testing"

	"github.com/mnfaaiiq/soniq/internal/models"
	th "github.com/mnfaaiiq/soniq/internal/testing"
)

var exportSongs = []models.Song{
	{
		SongID:    "song1",
		Title:     "Song One",
		Author:    "Artist One",
		SongPath:  "t1/one.mp3",
		ImagePath: "t1/one.png",
	},
	{
		SongID:   "song2",
		Title:    "Song Two",
		Author:   "Artist Two",
		SongPath: "t2/two.mp3",
	},
}

func TestExporters(t *testing.T) {
	t.Run("ExportToCSV", func(t *testing.T) {
		data, err := ExportToCSV(exportSongs)
		if err != nil {
			t.Fatalf("ExportToCSV failed: %v", err)
		}

		output := string(data)

		if !strings.Contains(output, "ID,Title,Author,SongPath,ImagePath") {
			t.Errorf("CSV missing headers, got: %s", output)
		}

		if !strings.Contains(output, "song1") {
			t.Errorf("CSV missing song1 ID")
		}
		if !strings.Contains(output, "Song One") {
			t.Errorf("CSV missing song1 title")
		}
		if !strings.Contains(output, "Artist One") {
			t.Errorf("CSV missing song1 author")
		}
		if !strings.Contains(output, "t2/two.mp3") {
			t.Errorf("CSV missing song2 path")
		}
	})

	t.Run("ExportToMarkdown", func(t *testing.T) {
		t.Run("without cover image", func(t *testing.T) {
			data, err := ExportToMarkdown("My Library", exportSongs, "")
			if err != nil {
				t.Fatalf("ExportToMarkdown failed: %v", err)
			}

			output := string(data)

			if !strings.Contains(output, "# My Library") {
				t.Errorf("Markdown missing title")
			}
			if !strings.Contains(output, "**Songs**: 2") {
				t.Errorf("Markdown missing song count")
			}
			if !strings.Contains(output, "## Songs") {
				t.Errorf("Markdown missing songs section")
			}
			if !strings.Contains(output, "1. Artist One - Song One") {
				t.Errorf("Markdown missing first entry, got: %s", output)
			}
			if strings.Contains(output, "![Cover]") {
				t.Errorf("Markdown should not reference a cover image")
			}
		})

		t.Run("with cover image", func(t *testing.T) {
			data, err := ExportToMarkdown("My Library", exportSongs, "cover.jpg")
			if err != nil {
				t.Fatalf("ExportToMarkdown failed: %v", err)
			}

			if !strings.Contains(string(data), "![Cover](cover.jpg)") {
				t.Errorf("Markdown missing cover image reference")
			}
		})

		t.Run("unknown artist", func(t *testing.T) {
			data, err := ExportToMarkdown("Singles", []models.Song{{SongID: "s", Title: "Untitled"}}, "")
			if err != nil {
				t.Fatalf("ExportToMarkdown failed: %v", err)
			}

			if !strings.Contains(string(data), "Unknown artist - Untitled") {
				t.Errorf("Markdown should fall back to unknown artist, got: %s", data)
			}
		})
	})

	t.Run("ExportToText", func(t *testing.T) {
		data, err := ExportToText("My Library", exportSongs)
		if err != nil {
			t.Fatalf("ExportToText failed: %v", err)
		}

		output := string(data)
		if !strings.Contains(output, "My Library") {
			t.Errorf("text missing title")
		}
		if !strings.Contains(output, "2. Artist Two - Song Two") {
			t.Errorf("text missing numbered entries, got: %s", output)
		}
	})
}

func TestDownloadImage(t *testing.T) {
	t.Run("EmptyURL", func(t *testing.T) {
		_, err := DownloadImage("")
		if err == nil {
			t.Error("DownloadImage with empty URL should return error")
		}
	})
}

func TestWriters(t *testing.T) {
	t.Run("WriteCSVExport", func(t *testing.T) {
		tempDir := t.TempDir()
		originalDir := th.MustGetwd(t)
		th.MustChdir(t, tempDir)
		defer th.MustChdir(t, originalDir)

		result, err := WriteCSVExport("My Library", exportSongs, "custom_export")
		if err != nil {
			t.Fatalf("WriteCSVExport failed: %v", err)
		}

		if result.SongsFile != "custom_export_songs.csv" {
			t.Errorf("Expected 'custom_export_songs.csv', got '%s'", result.SongsFile)
		}
		if result.MetadataFile != "custom_export_metadata.json" {
			t.Errorf("Expected 'custom_export_metadata.json', got '%s'", result.MetadataFile)
		}

		th.AssertFileExists(t, result.SongsFile)
		th.AssertFileExists(t, result.MetadataFile)

		csvContent := th.MustReadFile(t, result.SongsFile)
		if !strings.Contains(csvContent, "ID,Title,Author,SongPath,ImagePath") {
			t.Errorf("CSV missing headers")
		}
		if !strings.Contains(csvContent, "song1") || !strings.Contains(csvContent, "Song One") {
			t.Errorf("CSV missing song data")
		}

		metadataContent := th.MustReadFile(t, result.MetadataFile)
		if !strings.Contains(metadataContent, "My Library") || !strings.Contains(metadataContent, "\"song_count\": 2") {
			t.Errorf("Metadata JSON missing expected fields, got: %s", metadataContent)
		}
	})

	t.Run("WriteMarkdownExport", func(t *testing.T) {
		tempDir := t.TempDir()
		originalDir := th.MustGetwd(t)
		th.MustChdir(t, tempDir)
		defer th.MustChdir(t, originalDir)

		result, err := WriteMarkdownExport("My Library", exportSongs, "export", "")
		if err != nil {
			t.Fatalf("WriteMarkdownExport failed: %v", err)
		}

		if result.Directory != "export" {
			t.Errorf("Expected directory 'export', got '%s'", result.Directory)
		}
		th.AssertDirExists(t, result.Directory)

		readmePath := result.Directory + "/README.md"
		th.AssertFileExists(t, readmePath)

		content := th.MustReadFile(t, readmePath)
		if !strings.Contains(content, "# My Library") {
			t.Errorf("Markdown missing title")
		}
		if !strings.Contains(content, "1. Artist One - Song One") {
			t.Errorf("Markdown missing song entries")
		}
		if result.CoverImage != "" {
			t.Errorf("expected no cover image without URL, got %s", result.CoverImage)
		}
	})

	t.Run("WriteTextExport", func(t *testing.T) {
		tempDir := t.TempDir()
		originalDir := th.MustGetwd(t)
		th.MustChdir(t, tempDir)
		defer th.MustChdir(t, originalDir)

		path, err := WriteTextExport("My Library", exportSongs, "")
		if err != nil {
			t.Fatalf("WriteTextExport failed: %v", err)
		}

		if path != "library_songs.txt" {
			t.Errorf("Expected default path 'library_songs.txt', got '%s'", path)
		}
		th.AssertFileExists(t, path)
	})
}
