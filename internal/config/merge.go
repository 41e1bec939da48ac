package config

// mergeConfigs merges overlay config into base config.
// Scalars: overlay wins if non-zero
// Maps: deep merge
// Arrays: concatenate
func mergeConfigs(base, overlay *Config) *Config {
	if overlay == nil {
		return base
	}
	if base == nil {
		return overlay
	}

	result := *base // shallow copy

	// Profile locations
	if overlay.Profiles.UserDir != "" {
		result.Profiles.UserDir = overlay.Profiles.UserDir
	}
	if overlay.Profiles.SystemDir != "" {
		result.Profiles.SystemDir = overlay.Profiles.SystemDir
	}

	// UI settings
	if overlay.UI.Editor != "" {
		result.UI.Editor = overlay.UI.Editor
	}
	if overlay.UI.Pager != "" {
		result.UI.Pager = overlay.UI.Pager
	}
	if overlay.UI.Color != "" {
		result.UI.Color = overlay.UI.Color
	}

	// Logging: merge receivers (append), merge attributes
	if overlay.Logging.Level != "" {
		result.Logging.Level = overlay.Logging.Level
	}
	if len(overlay.Logging.Receivers) > 0 {
		result.Logging.Receivers = append(
			result.Logging.Receivers,
			overlay.Logging.Receivers...,
		)
	}
	result.Logging.Attributes = mergeStringMap(
		base.Logging.Attributes,
		overlay.Logging.Attributes,
	)

	return &result
}

// mergeStringMap merges two string maps, overlay wins for conflicts.
func mergeStringMap(base, overlay map[string]string) map[string]string {
	if base == nil && overlay == nil {
		return nil
	}
	result := make(map[string]string)
	for k, v := range base {
		result[k] = v
	}
	for k, v := range overlay {
		result[k] = v
	}
	return result
}
