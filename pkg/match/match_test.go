package match

import "testing"

func TestBoatNamesMatch(t *testing.T) {
	cases := []struct {
		a, b string
		want bool
	}{
		{"Aurora", "Aurora", true},
		{"aurora", "AURORA", true},
		{"  Aurora  ", "Aurora", true},
		{"Aurora Liveaboard", "Aurora", true},
		{"MV Aurora", "Aurora Liveaboard", true},
		{"KLM Sea Spirit", "Sea Spirit Cruises", true},
		{"La-Galigo", "La Galigo", true},
		{"Aurora", "Borealis", false},
		{"MV Aurora", "MV Borealis", false},
		{"", "Aurora", false},
		{"Aurora", "", false},
		{"", "", false},
		{"   ", "Aurora", false},
		{"MV", "Aurora", false},
	}
	for _, c := range cases {
		if got := BoatNamesMatch(c.a, c.b); got != c.want {
			t.Errorf("BoatNamesMatch(%q, %q) = %v, want %v", c.a, c.b, got, c.want)
		}
	}
}

func TestBoatNamesMatchIsSymmetric(t *testing.T) {
	pairs := [][2]string{
		{"MV Aurora", "Aurora Liveaboard"},
		{"Sea Spirit", "KLM Sea Spirit Cruises"},
		{"Aurora", "Borealis"},
	}
	for _, p := range pairs {
		if BoatNamesMatch(p[0], p[1]) != BoatNamesMatch(p[1], p[0]) {
			t.Errorf("BoatNamesMatch not symmetric for %q / %q", p[0], p[1])
		}
	}
}

func TestCabinNamesMatch(t *testing.T) {
	cases := []struct {
		a, b string
		want bool
	}{
		{"Master Cabin", "Master Room", true},
		{"Deluxe Suite", "Suite", true},
		{"Master Cabin", "master cabin", true},
		{"Sharing Cabin (4 pax)", "Sharing Cabin", true},
		{"Master Cabin", "Deluxe Cabin", false},
		{"", "Master Cabin", false},
		{"Cabin", "Room", false},
	}
	for _, c := range cases {
		if got := CabinNamesMatch(c.a, c.b); got != c.want {
			t.Errorf("CabinNamesMatch(%q, %q) = %v, want %v", c.a, c.b, got, c.want)
		}
	}
}

func TestNormalizeName(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"  MV  Aurora ", "mv aurora"},
		{"La-Galigo", "la galigo"},
		{"Sharing Cabin (4 pax)", "sharing cabin 4 pax"},
		{"", ""},
		{" \t ", ""},
	}
	for _, c := range cases {
		if got := NormalizeName(c.in); got != c.want {
			t.Errorf("NormalizeName(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
