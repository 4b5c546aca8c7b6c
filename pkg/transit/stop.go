package transit

type Stop struct {
	ID   string `json:"id" groups:"basic"`
	Name string `json:"name" groups:"basic"`

	Location Location `json:"location" groups:"basic"`

	Lines []string `json:"lines" groups:"basic"`
}
