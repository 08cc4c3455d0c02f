package domain

type SoilType struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type Weather struct {
	Temperature float64 `json:"temperature"`
	Humidity    float64 `json:"humidity"`
	Description string  `json:"description"`
	Rainfall    float64 `json:"rainfall"`
}
