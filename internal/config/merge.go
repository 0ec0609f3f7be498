package config

// Merge layers cli over fileCfg and returns the result. Non-zero cli fields
// win; zero-value cli fields fall through to the file config. Calls chain,
// so defaults, global file, project file, environment and flags stack as
// Merge(&defaults, Merge(global, ...)).
func Merge(fileCfg *Config, cli Config) Config {
	result := cli
	if fileCfg == nil {
		return result
	}

	if result.DataFile == "" {
		result.DataFile = fileCfg.DataFile
	}
	if result.Page == "" {
		result.Page = fileCfg.Page
	}
	if result.TopN == 0 {
		result.TopN = fileCfg.TopN
	}
	if result.OutputFormat == "" {
		result.OutputFormat = fileCfg.OutputFormat
	}
	if result.ChartFormat == "" {
		result.ChartFormat = fileCfg.ChartFormat
	}
	// SplitTrend: CLI wins if true, otherwise file config.
	if !result.SplitTrend && fileCfg.SplitTrend {
		result.SplitTrend = true
	}
	if result.Server.Addr == "" {
		result.Server.Addr = fileCfg.Server.Addr
	}

	c, fc := &result.Columns, fileCfg.Columns
	fill := func(dst *string, src string) {
		if *dst == "" {
			*dst = src
		}
	}
	fill(&c.Year, fc.Year)
	fill(&c.Regency, fc.Regency)
	fill(&c.Province, fc.Province)
	fill(&c.Level, fc.Level)
	fill(&c.Institution, fc.Institution)
	fill(&c.Program, fc.Program)
	fill(&c.Applicants, fc.Applicants)
	fill(&c.Quota, fc.Quota)

	return result
}
