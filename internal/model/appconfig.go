package model

// DefaultMarginValue is the trim allowance (cm) applied to a selected edge.
const DefaultMarginValue = 0.5

// BoardPreset is a named stock board the workshop keeps in stock.
type BoardPreset struct {
	Name          string    `json:"name"`
	Board         BoardSize `json:"board"`
	PricePerBoard float64   `json:"price_per_board"`
}

// AppConfig holds user preferences that survive between runs, including the
// last customer entered so the next order starts pre-filled.
type AppConfig struct {
	// Defaults applied to new projects
	DefaultBoard          BoardSize      `json:"default_board"`
	DefaultMarginValue    float64        `json:"default_margin_value"`
	DefaultRotationPolicy RotationPolicy `json:"default_rotation_policy"`
	DefaultWastePercent   float64        `json:"default_waste_percent"`
	BoardPresets          []BoardPreset  `json:"board_presets"`

	// Saved contact info
	SavedCustomer Customer `json:"saved_customer"`

	RecentProjects []string `json:"recent_projects"`
}

// DefaultAppConfig returns an AppConfig populated with the workshop defaults.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		DefaultBoard:          DefaultBoardSize(),
		DefaultMarginValue:    DefaultMarginValue,
		DefaultRotationPolicy: RotationFree,
		DefaultWastePercent:   10,
		BoardPresets: []BoardPreset{
			{Name: "Standard 244x122", Board: DefaultBoardSize()},
			{Name: "Half 122x122", Board: BoardSize{Length: 122, Width: 122}},
		},
		RecentProjects: []string{},
	}
}

// ApplyToSettings copies the saved defaults into a LayoutSettings struct.
func (c AppConfig) ApplyToSettings(s *LayoutSettings) {
	if c.DefaultRotationPolicy != "" {
		s.RotationPolicy = c.DefaultRotationPolicy
	}
}

// FindPreset returns the preset with the given name, or nil.
func (c AppConfig) FindPreset(name string) *BoardPreset {
	for i := range c.BoardPresets {
		if c.BoardPresets[i].Name == name {
			return &c.BoardPresets[i]
		}
	}
	return nil
}

// RememberCustomer stores the customer's contact details, keeping any field
// the new value leaves blank.
func (c *AppConfig) RememberCustomer(cust Customer) {
	if cust.Name != "" {
		c.SavedCustomer.Name = cust.Name
	}
	if cust.Phone != "" {
		c.SavedCustomer.Phone = cust.Phone
	}
}

// AddRecentProject moves path to the front of the recent list, capped at max.
func (c *AppConfig) AddRecentProject(path string, max int) {
	list := []string{path}
	for _, p := range c.RecentProjects {
		if p != path {
			list = append(list, p)
		}
	}
	if len(list) > max {
		list = list[:max]
	}
	c.RecentProjects = list
}
