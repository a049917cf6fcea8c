package gate

import "testing"

func testGate() *Gate {
	return New(
		Secrets{Year: "2022", StandardCity: "grenoble", ElevatedCity: "madurai"},
		Hints{Year: "year hint", City: "city hint"},
	)
}

func TestStepOneOnlyExactYearAdvances(t *testing.T) {
	tests := []struct {
		input   string
		advance bool
	}{
		{"2022", true},
		{"  2022\t", true},
		{"2021", false},
		{"", false},
		{"   ", false},
		{"20 22", false},
		{"2022a", false},
		{"madurai", false},
	}
	for _, tt := range tests {
		g := testGate()
		res := g.Submit(tt.input)
		if tt.advance {
			if res.Kind != Advance || g.Step() != 2 {
				t.Errorf("Submit(%q) = %+v step %d, want Advance step 2", tt.input, res, g.Step())
			}
			continue
		}
		if res.Kind != Reject {
			t.Errorf("Submit(%q) kind = %v, want Reject", tt.input, res.Kind)
		}
		if res.Reason == "" {
			t.Errorf("Submit(%q) rejection has empty reason", tt.input)
		}
		if g.Step() != 1 {
			t.Errorf("Submit(%q) step = %d, want 1", tt.input, g.Step())
		}
	}
}

func TestStepTwoMapsRoles(t *testing.T) {
	tests := []struct {
		input string
		kind  Kind
		role  Role
	}{
		{"grenoble", Unlock, RoleStandard},
		{"  Grenoble ", Unlock, RoleStandard},
		{"GRENOBLE", Unlock, RoleStandard},
		{"madurai", Unlock, RoleElevated},
		{"Madurai", Unlock, RoleElevated},
		{"paris", Reject, RoleNone},
		{"", Reject, RoleNone},
		{"2022", Reject, RoleNone},
		{"madurai grenoble", Reject, RoleNone},
	}
	for _, tt := range tests {
		g := testGate()
		g.Submit("2022")
		res := g.Submit(tt.input)
		if res.Kind != tt.kind || res.Role != tt.role {
			t.Errorf("Submit(%q) = %+v, want kind %v role %v", tt.input, res, tt.kind, tt.role)
		}
		if g.Step() != 2 {
			t.Errorf("Submit(%q) step = %d, want 2", tt.input, g.Step())
		}
		if tt.kind == Reject && res.Reason != "city hint" {
			t.Errorf("Submit(%q) reason = %q, want city hint", tt.input, res.Reason)
		}
	}
}

func TestRejectionNeverResetsStepTwo(t *testing.T) {
	g := testGate()
	g.Submit("2022")
	for i := 0; i < 5; i++ {
		g.Submit("wrong")
	}
	if g.Step() != 2 {
		t.Errorf("step = %d after repeated rejections, want 2", g.Step())
	}
}

func TestStepBackAndRelock(t *testing.T) {
	g := testGate()
	if g.StepBack() {
		t.Error("StepBack at step 1 should not move")
	}
	g.Submit("2022")
	if !g.StepBack() || g.Step() != 1 {
		t.Errorf("StepBack from 2 should land on 1, got %d", g.Step())
	}
	g.Relock()
	if g.Step() != 2 {
		t.Errorf("Relock step = %d, want 2", g.Step())
	}
}

func TestPlaintextSecretsAreNormalized(t *testing.T) {
	g := New(Secrets{Year: " 2022 ", StandardCity: "Grenoble", ElevatedCity: " MADURAI"}, Hints{})
	g.Submit("2022")
	if res := g.Submit("madurai"); res.Kind != Unlock || res.Role != RoleElevated {
		t.Errorf("Submit(madurai) = %+v, want elevated unlock", res)
	}
}

func TestNonASCIICitiesMatchAsConfigured(t *testing.T) {
	tests := []struct {
		secret string
		answer string
	}{
		{"Straße", "Straße"},
		{"Straße", "STRASSE"},
		{"Ὀδυσσεύς", "Ὀδυσσεύς"},
		{"Ὀδυσσεύς", "ὀδυσσεύσ"},
		{"Zürich", " zürich "},
	}
	for _, tt := range tests {
		g := New(Secrets{Year: "2022", StandardCity: "grenoble", ElevatedCity: tt.secret}, Hints{})
		g.Submit("2022")
		if res := g.Submit(tt.answer); res.Kind != Unlock || res.Role != RoleElevated {
			t.Errorf("secret %q, Submit(%q) = %+v, want elevated unlock", tt.secret, tt.answer, res)
		}
	}
}

func TestBcryptSecrets(t *testing.T) {
	year, err := HashAnswer("2022", false)
	if err != nil {
		t.Fatalf("HashAnswer failed: %v", err)
	}
	city, err := HashAnswer(" Madurai", true)
	if err != nil {
		t.Fatalf("HashAnswer failed: %v", err)
	}
	g := New(Secrets{Year: year, StandardCity: "grenoble", ElevatedCity: city}, Hints{Year: "y", City: "c"})

	if res := g.Submit("2021"); res.Kind != Reject {
		t.Errorf("wrong year against hash = %+v, want Reject", res)
	}
	if res := g.Submit(" 2022 "); res.Kind != Advance {
		t.Fatalf("year against hash = %+v, want Advance", res)
	}
	if res := g.Submit("Madurai"); res.Kind != Unlock || res.Role != RoleElevated {
		t.Errorf("city against hash = %+v, want elevated unlock", res)
	}
}

func TestRoleCanDelete(t *testing.T) {
	if RoleStandard.CanDelete() || RoleNone.CanDelete() {
		t.Error("only elevated may delete")
	}
	if !RoleElevated.CanDelete() {
		t.Error("elevated should be able to delete")
	}
}
