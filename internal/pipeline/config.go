package pipeline

import "path/filepath"

// Config names the files each stage hands to the next. Relative names are
// resolved against Dir.
type Config struct {
	Dir          string
	ScoresFile   string
	ModifiedFile string
	AnalysisFile string
}

func DefaultConfig() Config {
	return Config{
		Dir:          ".",
		ScoresFile:   "student_scores.xlsx",
		ModifiedFile: "student_scores_modified.xlsx",
		AnalysisFile: "student_analysis.xlsx",
	}
}

func (c Config) ScoresPath() string   { return c.path(c.ScoresFile) }
func (c Config) ModifiedPath() string { return c.path(c.ModifiedFile) }
func (c Config) AnalysisPath() string { return c.path(c.AnalysisFile) }

func (c Config) path(name string) string {
	if filepath.IsAbs(name) || c.Dir == "" {
		return name
	}
	return filepath.Join(c.Dir, name)
}
