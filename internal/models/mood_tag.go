package models

import (
	"fmt"
	"strings"
)

type MoodTag int

const (
	MoodHappy MoodTag = iota
	MoodCaring
	MoodGrateful
	MoodExcited
	MoodSad
	MoodLonely
	MoodHurt
	MoodDisappointed
	MoodLoved
	MoodRespected
	MoodValued
	MoodAccepted
	MoodConfident
	MoodBrave
	MoodHopeful
	MoodPowerful
	MoodPlayful
	MoodCreative
	MoodCurious
	MoodAffectionate
	MoodEmbarrassed
	MoodAshamed
	MoodExcluded
	MoodGuilty
	MoodAngry
	MoodBored
	MoodJealous
	MoodAnnoyed
	MoodScared
	MoodAnxious
	MoodPowerless
	MoodOverwhelmed
	moodTagCount
)

var moodTagNames = [moodTagCount]string{
	"Happy", "Caring", "Grateful", "Excited",
	"Sad", "Lonely", "Hurt", "Disappointed",
	"Loved", "Respected", "Valued", "Accepted",
	"Confident", "Brave", "Hopeful", "Powerful",
	"Playful", "Creative", "Curious", "Affectionate",
	"Embarrassed", "Ashamed", "Excluded", "Guilty",
	"Angry", "Bored", "Jealous", "Annoyed",
	"Scared", "Anxious", "Powerless", "Overwhelmed",
}

var moodTagEmoji = [moodTagCount]string{
	"😃", "💓", "🙇", "😆",
	"😢", "🚫🍺", "😧", "😞",
	"😍", "🚩", "💲🙂", "👍",
	"😎", "🦸", "✌️", "💪",
	"⛹️", "🎨", "🐈", "💌",
	"😳", "😞", "🙅", "😰",
	"😠", "😐", "😒", "🙄",
	"😰", "😓", "🚫⚡️", "😬",
}

// AllMoodTags returns every tag in declaration order.
func AllMoodTags() []MoodTag {
	tags := make([]MoodTag, 0, moodTagCount)
	for i := MoodTag(0); i < moodTagCount; i++ {
		tags = append(tags, i)
	}
	return tags
}

func (m MoodTag) Valid() bool {
	return m >= 0 && m < moodTagCount
}

func (m MoodTag) String() string {
	if !m.Valid() {
		return fmt.Sprintf("MoodTag(%d)", int(m))
	}
	return moodTagNames[m]
}

func (m MoodTag) Emoji() string {
	if !m.Valid() {
		return ""
	}
	return moodTagEmoji[m]
}

// MoodByName returns the first tag whose name contains text, case-insensitively.
func MoodByName(text string) (MoodTag, bool) {
	term := strings.ToLower(text)
	for i, name := range moodTagNames {
		if strings.Contains(strings.ToLower(name), term) {
			return MoodTag(i), true
		}
	}
	return 0, false
}

func (m MoodTag) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("unknown mood tag %d", int(m))
	}
	return []byte(moodTagNames[m]), nil
}

// UnmarshalText accepts only exact tag names.
func (m *MoodTag) UnmarshalText(text []byte) error {
	s := string(text)
	for i, name := range moodTagNames {
		if name == s {
			*m = MoodTag(i)
			return nil
		}
	}
	return fmt.Errorf("unknown mood tag %q", s)
}
