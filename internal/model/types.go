// Package model defines shared data structures.
package model

import "time"

// Config defines simulation settings.
type Config struct {
	Speed     float64
	Offline   bool
	Endpoint  string
	Timeout   time.Duration
	UserAgent string
	Pacing    Pacing
}

// Location is the approximate geolocation of the session.
type Location struct {
	City      string
	Region    string
	Country   string
	Latitude  float64
	Longitude float64
}

// BrowserInfo describes the client as seen by a website.
type BrowserInfo struct {
	UserAgent  string
	Browser    string
	OS         string
	DeviceType string
}

// Metadata is what any site can learn about a visitor.
type Metadata struct {
	IPAddress   string
	Location    Location
	BrowserInfo BrowserInfo
	Timestamp   int64
}

// SocialAccount is a simulated social media handle.
type SocialAccount struct {
	Platform string
	Username string
}

// Profile is the simulated personal data derived from a seed.
type Profile struct {
	Name              string
	Email             string
	PhoneNumber       string
	SocialAccounts    []SocialAccount
	Relatives         []string
	LeakedPasswords   []string
	DateOfBirth       string
	PossibleAddresses []string
}

// BreachEvent is a simulated data breach entry.
type BreachEvent struct {
	Site string
	Date string
}

// Bundle is the data every scene reads.
type Bundle struct {
	Metadata Metadata
	Profile  Profile
}
