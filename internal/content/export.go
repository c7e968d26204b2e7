package content

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

const (
	sheetTopics    = "Topics"
	sheetLessons   = "Lessons"
	sheetExercises = "Exercises"
)

// WriteWorkbook writes the catalog as an .xlsx workbook with one sheet
// per collection, for content authors who review material in a
// spreadsheet.
func WriteWorkbook(c *Catalog, w io.Writer) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	topicRows := [][]any{{"ID", "Title", "Description", "Icon", "Color", "Lessons", "Exercises", "Minutes"}}
	for _, t := range c.topics {
		lessons := c.LessonsForTopic(t.ID)
		minutes := 0
		for _, l := range lessons {
			minutes += l.Duration
		}
		topicRows = append(topicRows, []any{
			t.ID, t.Title, t.Description, t.Icon, t.Color,
			len(lessons), len(FilterExercisesByTopic(c.exercises, t.ID)), minutes,
		})
	}

	lessonRows := [][]any{{"ID", "Topic", "Title", "Description", "Duration (min)", "Has Code Example"}}
	for _, l := range c.lessons {
		lessonRows = append(lessonRows, []any{l.ID, l.TopicID, l.Title, l.Description, l.Duration, l.CodeExample != ""})
	}

	exerciseRows := [][]any{{"ID", "Topic", "Title", "Difficulty", "Hints", "Has Solution"}}
	for _, e := range c.exercises {
		exerciseRows = append(exerciseRows, []any{
			e.ID, e.TopicID, e.Title, e.Difficulty.Label(), strings.Join(e.Hints, "\n"), e.Solution != "",
		})
	}

	// The default sheet is renamed rather than deleted so the workbook
	// always has an active sheet.
	if err := f.SetSheetName("Sheet1", sheetTopics); err != nil {
		return fmt.Errorf("renaming default sheet: %w", err)
	}
	if err := writeRows(f, sheetTopics, topicRows); err != nil {
		return err
	}
	for _, s := range []struct {
		name string
		rows [][]any
	}{
		{sheetLessons, lessonRows},
		{sheetExercises, exerciseRows},
	} {
		if _, err := f.NewSheet(s.name); err != nil {
			return fmt.Errorf("creating sheet %s: %w", s.name, err)
		}
		if err := writeRows(f, s.name, s.rows); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("writing %s row %d: %w", sheet, i+1, err)
		}
	}
	if err := f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("freezing %s header: %w", sheet, err)
	}
	return nil
}
