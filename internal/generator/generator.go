// Package generator builds the simulated personal profile and breach history.
package generator

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"time"

	"github.com/verte-zerg/doxsim/internal/model"
)

var (
	firstNames      = []string{"Alex", "Jordan", "Taylor", "Casey", "Morgan", "Riley", "Avery", "Quinn"}
	lastNames       = []string{"Smith", "Johnson", "Williams", "Brown", "Jones", "Miller", "Davis", "Garcia"}
	commonWords     = []string{"password", "qwerty", "welcome", "sunshine", "football"}
	relativeNames   = []string{"Pat", "Sam", "Jesse", "Jamie"}
	emailDomains    = []string{"gmail.com", "yahoo.com", "hotmail.com", "outlook.com"}
	breachSites     = []string{"SocialConnect", "EasyShop", "GameWorld", "QuickMail", "CloudStore", "FinanceTracker", "TravelBooker", "FitnessLog"}
	stockAddresses  = []string{"123 Main St, Apt 4B", "567 Oak Avenue", "892 Pine Lane"}
	breachFirstYear = 2016
	breachYears     = 7
)

// SeedNumber sums the character codes of seed.
func SeedNumber(seed string) int {
	n := 0
	for _, r := range seed {
		n += int(r)
	}
	return n
}

// Profile derives a fake personal profile from seed. The same seed always
// yields the same profile.
func Profile(seed string) model.Profile {
	n := SeedNumber(seed)
	first := firstNames[n%len(firstNames)]
	last := lastNames[(n*3)%len(lastNames)]
	lowerFirst := strings.ToLower(first)
	lowerLast := strings.ToLower(last)

	relatives := make([]string, 0, len(relativeNames))
	for _, name := range relativeNames {
		relatives = append(relatives, name+" "+last)
	}

	password := fmt.Sprintf("%s%d!", commonWords[n%len(commonWords)], n%99+1)
	areaCode := 100 + n%900

	return model.Profile{
		Name:        first + " " + last,
		Email:       fmt.Sprintf("%s.%s%d@%s", lowerFirst, lowerLast, n%100, emailDomains[n%len(emailDomains)]),
		PhoneNumber: fmt.Sprintf("(%d) %d-%d", areaCode, 200+n%800, 1000+n%9000),
		SocialAccounts: []model.SocialAccount{
			{Platform: "Facebook", Username: lowerFirst + "." + lowerLast},
			{Platform: "Instagram", Username: fmt.Sprintf("%s%s%d", lowerFirst, lowerLast, n%100)},
			{Platform: "Twitter", Username: fmt.Sprintf("@%s%d", lowerFirst, n%1000)},
			{Platform: "LinkedIn", Username: fmt.Sprintf("%s-%s-%da", lowerFirst, lowerLast, n%10)},
		},
		Relatives:         relatives,
		LeakedPasswords:   []string{password, fmt.Sprintf("%s%d", first, n%100)},
		DateOfBirth:       fmt.Sprintf("%d-%d-%d", 1950+n%50, n%12+1, n%28+1),
		PossibleAddresses: append([]string(nil), stockAddresses...),
	}
}

// Generator produces randomized breach history.
type Generator struct {
	rnd *rand.Rand
}

// New returns a Generator seeded with the current time.
func New() *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// NewWithRand returns a Generator drawing from rnd.
func NewWithRand(rnd *rand.Rand) *Generator {
	return &Generator{rnd: rnd}
}

// Breaches returns count random breach events, newest first.
func (g *Generator) Breaches(count int) []model.BreachEvent {
	if count <= 0 {
		return nil
	}
	events := make([]model.BreachEvent, 0, count)
	for i := 0; i < count; i++ {
		site := breachSites[g.rnd.Intn(len(breachSites))]
		year := breachFirstYear + g.rnd.Intn(breachYears)
		month := g.rnd.Intn(12) + 1
		day := g.rnd.Intn(28) + 1
		events = append(events, model.BreachEvent{
			Site: site,
			Date: fmt.Sprintf("%d-%02d-%02d", year, month, day),
		})
	}
	// Zero-padded ISO dates sort lexically.
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Date > events[j].Date
	})
	return events
}
