package generator

import (
	"math/rand"
	"reflect"
	"testing"
)

func TestProfileIsDeterministic(t *testing.T) {
	a := Profile("203.0.113.5")
	b := Profile("203.0.113.5")
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("expected identical profiles, got %+v and %+v", a, b)
	}
	if a.Name == "" || a.Email == "" || len(a.LeakedPasswords) != 2 {
		t.Fatalf("incomplete profile: %+v", a)
	}
}

func TestProfileFormulas(t *testing.T) {
	// '2'+'0'+'3'+'.'+'0'+'.'+'1'+'1'+'3'+'.'+'5' = 537
	n := SeedNumber("203.0.113.5")
	if n != 537 {
		t.Fatalf("expected seed number 537, got %d", n)
	}
	p := Profile("203.0.113.5")
	if p.Name != "Jordan Brown" {
		t.Fatalf("unexpected name %q", p.Name)
	}
	if p.Email != "jordan.brown37@yahoo.com" {
		t.Fatalf("unexpected email %q", p.Email)
	}
	if p.PhoneNumber != "(637) 737-1537" {
		t.Fatalf("unexpected phone %q", p.PhoneNumber)
	}
	if p.LeakedPasswords[0] != "welcome43!" || p.LeakedPasswords[1] != "Jordan37" {
		t.Fatalf("unexpected passwords %v", p.LeakedPasswords)
	}
	if p.DateOfBirth != "1987-10-6" {
		t.Fatalf("unexpected date of birth %q", p.DateOfBirth)
	}
	if p.Relatives[0] != "Pat Brown" || len(p.Relatives) != 4 {
		t.Fatalf("unexpected relatives %v", p.Relatives)
	}
	if p.SocialAccounts[2].Username != "@jordan537" || p.SocialAccounts[3].Username != "jordan-brown-7a" {
		t.Fatalf("unexpected social accounts %+v", p.SocialAccounts)
	}
}

func TestProfileAddressesAreCopies(t *testing.T) {
	p := Profile("x")
	p.PossibleAddresses[0] = "changed"
	if Profile("x").PossibleAddresses[0] == "changed" {
		t.Fatalf("profiles must not share address storage")
	}
}

func TestBreachesSortedNewestFirst(t *testing.T) {
	g := NewWithRand(rand.New(rand.NewSource(42)))
	events := g.Breaches(4)
	if len(events) != 4 {
		t.Fatalf("expected 4 events, got %d", len(events))
	}
	for i := 1; i < len(events); i++ {
		if events[i-1].Date < events[i].Date {
			t.Fatalf("events not sorted newest first: %+v", events)
		}
	}
	for _, e := range events {
		if e.Site == "" || len(e.Date) != len("2016-01-01") {
			t.Fatalf("malformed event %+v", e)
		}
	}
}

func TestBreachesNonPositiveCount(t *testing.T) {
	if got := New().Breaches(0); len(got) != 0 {
		t.Fatalf("expected no events, got %d", len(got))
	}
}
