package config

func boolPtr(v bool) *bool { return &v }

// applyDefaults fills zero-valued fields with the fixed configuration the legacy
// build script used, so an empty config file still produces the same artifacts.
func applyDefaults(c *Config) {
	if c.Project.Name == "" {
		c.Project.Name = "NOAARadarDownloader"
	}
	if c.Project.EntryPoint == "" {
		c.Project.EntryPoint = "noaa_radar_downloader.py"
	}

	if c.Venv.Dir == "" {
		c.Venv.Dir = "venv"
	}
	if c.Venv.Requirements == "" {
		c.Venv.Requirements = "requirements.txt"
	}

	if c.Packager.OneFile == nil {
		c.Packager.OneFile = boolPtr(true)
	}
	if c.Packager.Windowed == nil {
		c.Packager.Windowed = boolPtr(true)
	}

	if c.Output.BuildDir == "" {
		c.Output.BuildDir = "build"
	}
	if c.Output.DistDir == "" {
		c.Output.DistDir = "dist"
	}
	if c.Output.Archive == nil {
		c.Output.Archive = boolPtr(true)
	}
	if c.Output.Clean == nil {
		c.Output.Clean = boolPtr(true)
	}

	if c.Build.FailureMode == "" {
		c.Build.FailureMode = FailureBestEffort
	}
	if c.Build.MaxRetries == 0 {
		c.Build.MaxRetries = 2
	}
	if c.Build.RetryBackoff == "" {
		c.Build.RetryBackoff = RetryBackoffLinear
	}
	if c.Build.RetryInitialDelay == "" {
		c.Build.RetryInitialDelay = "1s"
	}
	if c.Build.RetryMaxDelay == "" {
		c.Build.RetryMaxDelay = "30s"
	}

	if c.Watch.Debounce == "" {
		c.Watch.Debounce = "2s"
	}

	if c.Monitoring != nil && c.Monitoring.Enabled && c.Monitoring.ListenAddr == "" {
		c.Monitoring.ListenAddr = ":9190"
	}
}
