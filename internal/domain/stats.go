package domain

// DashboardStats headline numbers on the overview page
type DashboardStats struct {
	TotalDevices     int     `json:"totalDevices"`
	ActiveDevices    int     `json:"activeDevices"`
	Alerts           int     `json:"alerts"`
	PowerConsumption float64 `json:"powerConsumption"`
}

// EnergyPoint one bar of the energy chart
type EnergyPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// EnergySeries energy usage over a time range compared to the previous range
type EnergySeries struct {
	Current  float64       `json:"current"`
	Previous float64       `json:"previous"`
	Change   float64       `json:"change"` // percent
	Trend    string        `json:"trend"`  // "up", "down" or "flat"
	Data     []EnergyPoint `json:"data"`
}

// StatusDistribution device status shares in percent
type StatusDistribution struct {
	Online  float64 `json:"online"`
	Warning float64 `json:"warning"`
	Offline float64 `json:"offline"`
	Error   float64 `json:"error"`
	Total   int     `json:"total"`
}

// EnvironmentalSummary averages over devices that report climate readings
type EnvironmentalSummary struct {
	AvgTemperature float64 `json:"avgTemperature"`
	AvgHumidity    float64 `json:"avgHumidity"`
	Samples        int     `json:"samples"`
}

// AnalyticsReport analytics page payload
type AnalyticsReport struct {
	Range             string               `json:"range"`
	EnergyConsumption EnergySeries         `json:"energyConsumption"`
	DeviceUtilization StatusDistribution   `json:"deviceUtilization"`
	Environmental     EnvironmentalSummary `json:"environmentalData"`
}
