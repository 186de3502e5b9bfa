package domain

// toolPreference ranks acceptable tool names per task category. The first
// name present in the caller-supplied registry wins.
var toolPreference = map[TaskCategory][]string{
	CategoryRead:     {"read_file", "shell"},
	CategoryEdit:     {"write_file", "shell"},
	CategoryCreate:   {"write_file", "shell"},
	CategoryDelete:   {"delete_file", "shell"},
	CategorySearch:   {"search_files", "shell"},
	CategoryAnalyze:  {"read_file", "search_files", "shell"},
	CategoryExecute:  {"shell"},
	CategoryRefactor: {"write_file", "shell"},
	CategoryTest:     {"shell"},
	CategoryDeploy:   {"shell"},
	CategoryValidate: {"read_file", "shell"},
	CategoryOptimize: {"shell"},
	CategoryDebug:    {"shell", "read_file"},
	CategoryDocument: {"write_file", "shell"},
}

// ToolPreference returns the ranked tool names acceptable for a category.
func ToolPreference(category TaskCategory) []string {
	return toolPreference[category]
}
