package services

import (
	"encoding/json"
	"fmt"
	"os"

	"flowai-dashboard/i18n"
	"flowai-dashboard/models"
)

// TitleTable is the client-maintained title override: task id -> language -> title.
type TitleTable map[models.TaskID]map[string]string

// LoadTitleTable reads a JSON file shaped {"<id>": {"<lang>": "<title>"}}.
// An empty path yields an empty table.
func LoadTitleTable(path string) (TitleTable, error) {
	if path == "" {
		return TitleTable{}, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read title table %s: %w", path, err)
	}
	var table TitleTable
	if err := json.Unmarshal(raw, &table); err != nil {
		return nil, fmt.Errorf("failed to parse title table %s: %w", path, err)
	}
	return table, nil
}

// ResolveTitle picks a display title, in order: the client table for lang, the task's
// multilingual map, its plain title, then the localized "unknown task" placeholder.
func ResolveTitle(table TitleTable, task models.Task, lang string) string {
	if byLang, ok := table[task.ID]; ok {
		if title := byLang[lang]; title != "" {
			return title
		}
	}
	if title, ok := task.Title.In(lang); ok {
		return title
	}
	if task.Title.Plain != "" {
		return task.Title.Plain
	}
	return i18n.Translate(lang, "tasks.unknownTask", nil)
}
