package llm

import "testing"

func TestValidateAnalysisJSON(t *testing.T) {
	valid := `{
		"personName": "JOAO DA SILVA",
		"shifts": [
			{"date": "2024-03-15", "startTime": "07:00", "endTime": "17:00", "hoursWorked": 10},
			{"date": "2024-03-16", "startTime": "22:00", "endTime": "06:00", "description": "patrulhamento", "hoursWorked": 8}
		]
	}`
	if err := validateAnalysisJSON([]byte(valid)); err != nil {
		t.Fatal(err)
	}

	cases := []struct {
		name string
		data string
	}{
		{name: "not json", data: `ok, here is the JSON:`},
		{name: "missing person", data: `{"shifts": []}`},
		{name: "bad date format", data: `{"personName": "X", "shifts": [{"date": "15/03/2024", "startTime": "07:00", "endTime": "17:00", "hoursWorked": 10}]}`},
		{name: "negative hours", data: `{"personName": "X", "shifts": [{"date": "2024-03-15", "startTime": "07:00", "endTime": "17:00", "hoursWorked": -1}]}`},
		{name: "unknown field", data: `{"personName": "X", "shifts": [], "extra": true}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := validateAnalysisJSON([]byte(tc.data)); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}
