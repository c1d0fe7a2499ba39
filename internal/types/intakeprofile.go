package types

import (
	"time"

	"github.com/google/uuid"
)

// Closed category sets for the one-time intake survey. Values are validated
// at the data-entry boundary; generation code can assume a stored profile
// only holds values from these sets.

type Pronouns string

const (
	PronounsSheHer         Pronouns = "SHE_HER"
	PronounsHeHim          Pronouns = "HE_HIM"
	PronounsTheyThem       Pronouns = "THEY_THEM"
	PronounsOther          Pronouns = "OTHER"
	PronounsPreferNotToSay Pronouns = "PREFER_NOT_TO_SAY"
)

var pronounsSet = map[Pronouns]bool{
	PronounsSheHer: true, PronounsHeHim: true, PronounsTheyThem: true,
	PronounsOther: true, PronounsPreferNotToSay: true,
}

func (p Pronouns) Valid() bool { return pronounsSet[p] }

type FavoriteColor string

const (
	ColorRed    FavoriteColor = "RED"
	ColorBlue   FavoriteColor = "BLUE"
	ColorGreen  FavoriteColor = "GREEN"
	ColorYellow FavoriteColor = "YELLOW"
	ColorBlack  FavoriteColor = "BLACK"
	ColorWhite  FavoriteColor = "WHITE"
	ColorOrange FavoriteColor = "ORANGE"
	ColorPurple FavoriteColor = "PURPLE"
)

var favoriteColorSet = map[FavoriteColor]bool{
	ColorRed: true, ColorBlue: true, ColorGreen: true, ColorYellow: true,
	ColorBlack: true, ColorWhite: true, ColorOrange: true, ColorPurple: true,
}

func (f FavoriteColor) Valid() bool { return favoriteColorSet[f] }

type Hobby string

const (
	HobbySports           Hobby = "SPORTS"
	HobbyReading          Hobby = "READING"
	HobbyGaming           Hobby = "GAMING"
	HobbyMusic            Hobby = "MUSIC"
	HobbyArtCraft         Hobby = "ART_CRAFT"
	HobbyTraveling        Hobby = "TRAVELING"
	HobbyCookingBaking    Hobby = "COOKING_BAKING"
	HobbyGardening        Hobby = "GARDENING"
	HobbyMoviesTVShows    Hobby = "MOVIES_TV_SHOWS"
	HobbyTechnologyCoding Hobby = "TECHNOLOGY_CODING"
	HobbyPhotography      Hobby = "PHOTOGRAPHY"
	HobbyDancing          Hobby = "DANCING"
	HobbyWriting          Hobby = "WRITING"
	HobbyFishing          Hobby = "FISHING"
	HobbyHiking           Hobby = "HIKING"
	HobbyYoga             Hobby = "YOGA"
	HobbyCollecting       Hobby = "COLLECTING"
	HobbyBoardGames       Hobby = "BOARD_GAMES"
)

var hobbySet = map[Hobby]bool{
	HobbySports: true, HobbyReading: true, HobbyGaming: true, HobbyMusic: true,
	HobbyArtCraft: true, HobbyTraveling: true, HobbyCookingBaking: true,
	HobbyGardening: true, HobbyMoviesTVShows: true, HobbyTechnologyCoding: true,
	HobbyPhotography: true, HobbyDancing: true, HobbyWriting: true,
	HobbyFishing: true, HobbyHiking: true, HobbyYoga: true,
	HobbyCollecting: true, HobbyBoardGames: true,
}

func (h Hobby) Valid() bool { return hobbySet[h] }

type AgeRange string

const (
	Age13To17         AgeRange = "AGE_13_17"
	Age18To24         AgeRange = "AGE_18_24"
	Age25To34         AgeRange = "AGE_25_34"
	Age35To44         AgeRange = "AGE_35_44"
	Age45To54         AgeRange = "AGE_45_54"
	Age55To64         AgeRange = "AGE_55_64"
	Age65To80         AgeRange = "AGE_65_80"
	Age80Plus         AgeRange = "AGE_80_PLUS"
	AgePreferNotToSay AgeRange = "PREFER_NOT_TO_SAY"
)

var ageRangeSet = map[AgeRange]bool{
	Age13To17: true, Age18To24: true, Age25To34: true, Age35To44: true,
	Age45To54: true, Age55To64: true, Age65To80: true, Age80Plus: true,
	AgePreferNotToSay: true,
}

func (a AgeRange) Valid() bool { return ageRangeSet[a] }

type ClosePersonPresence string

const (
	ClosePersonRomanticPartner ClosePersonPresence = "YES_ROMANTIC_PARTNER"
	ClosePersonCloseFriend     ClosePersonPresence = "YES_CLOSE_FRIEND"
	ClosePersonFamilyMember    ClosePersonPresence = "YES_FAMILY_MEMBER"
	ClosePersonMultipleTypes   ClosePersonPresence = "YES_MULTIPLE_TYPES"
	ClosePersonNone            ClosePersonPresence = "NO_CLOSE_PERSON"
	ClosePersonComplicated     ClosePersonPresence = "ITS_COMPLICATED"
)

var closePersonSet = map[ClosePersonPresence]bool{
	ClosePersonRomanticPartner: true, ClosePersonCloseFriend: true,
	ClosePersonFamilyMember: true, ClosePersonMultipleTypes: true,
	ClosePersonNone: true, ClosePersonComplicated: true,
}

func (c ClosePersonPresence) Valid() bool { return closePersonSet[c] }

type FamilyRelationshipQuality string

const (
	FamilyVeryGood      FamilyRelationshipQuality = "VERY_GOOD"
	FamilyGood          FamilyRelationshipQuality = "GOOD"
	FamilyNeutral       FamilyRelationshipQuality = "NEUTRAL"
	FamilyDifficult     FamilyRelationshipQuality = "DIFFICULT"
	FamilyVeryDifficult FamilyRelationshipQuality = "VERY_DIFFICULT"
	FamilyNoContact     FamilyRelationshipQuality = "NO_CONTACT"
)

var familyQualitySet = map[FamilyRelationshipQuality]bool{
	FamilyVeryGood: true, FamilyGood: true, FamilyNeutral: true,
	FamilyDifficult: true, FamilyVeryDifficult: true, FamilyNoContact: true,
}

func (f FamilyRelationshipQuality) Valid() bool { return familyQualitySet[f] }

type CloseRelationshipsQuality string

const (
	CloseVeryGood      CloseRelationshipsQuality = "VERY_GOOD"
	CloseGood          CloseRelationshipsQuality = "GOOD"
	CloseNeutral       CloseRelationshipsQuality = "NEUTRAL"
	CloseDifficult     CloseRelationshipsQuality = "DIFFICULT"
	CloseVeryDifficult CloseRelationshipsQuality = "VERY_DIFFICULT"
	CloseNotApplicable CloseRelationshipsQuality = "NOT_APPLICABLE"
)

var closeQualitySet = map[CloseRelationshipsQuality]bool{
	CloseVeryGood: true, CloseGood: true, CloseNeutral: true,
	CloseDifficult: true, CloseVeryDifficult: true, CloseNotApplicable: true,
}

func (c CloseRelationshipsQuality) Valid() bool { return closeQualitySet[c] }

// IntakeProfile holds a user's one-time onboarding answers. At most one row
// per user, enforced by the unique index on user_id.
type IntakeProfile struct {
	ID                        uuid.UUID                 `gorm:"type:uuid;primaryKey" json:"id"`
	UserID                    uuid.UUID                 `gorm:"uniqueIndex;not null" json:"user_id"`
	User                      *User                     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"-"`
	Pronouns                  Pronouns                  `gorm:"size:50;column:pronouns" json:"pronouns"`
	FavoriteColor             FavoriteColor             `gorm:"size:50;column:favorite_color" json:"favorite_color"`
	Hobby                     Hobby                     `gorm:"size:50;column:hobby" json:"hobby"`
	AgeRange                  AgeRange                  `gorm:"size:50;column:age_range" json:"age_range"`
	ClosePersonPresence       ClosePersonPresence       `gorm:"size:50;column:close_person_presence" json:"close_person_presence"`
	FamilyRelationshipQuality FamilyRelationshipQuality `gorm:"size:50;column:family_relationship_quality" json:"family_relationship_quality"`
	CloseRelationshipsQuality CloseRelationshipsQuality `gorm:"size:50;column:close_relationships_quality" json:"close_relationships_quality"`
	CreatedAt                 time.Time                 `gorm:"not null" json:"created_at"`
	UpdatedAt                 time.Time                 `gorm:"not null" json:"updated_at"`
}

func (IntakeProfile) TableName() string {
	return "intake_profile"
}

// Validate checks every category against its closed set.
func (p *IntakeProfile) Validate() error {
	if !p.Pronouns.Valid() {
		return &InvalidCategoryError{Field: "pronouns", Value: string(p.Pronouns)}
	}
	if !p.FavoriteColor.Valid() {
		return &InvalidCategoryError{Field: "favorite_color", Value: string(p.FavoriteColor)}
	}
	if !p.Hobby.Valid() {
		return &InvalidCategoryError{Field: "hobby", Value: string(p.Hobby)}
	}
	if !p.AgeRange.Valid() {
		return &InvalidCategoryError{Field: "age_range", Value: string(p.AgeRange)}
	}
	if !p.ClosePersonPresence.Valid() {
		return &InvalidCategoryError{Field: "close_person_presence", Value: string(p.ClosePersonPresence)}
	}
	if !p.FamilyRelationshipQuality.Valid() {
		return &InvalidCategoryError{Field: "family_relationship_quality", Value: string(p.FamilyRelationshipQuality)}
	}
	if !p.CloseRelationshipsQuality.Valid() {
		return &InvalidCategoryError{Field: "close_relationships_quality", Value: string(p.CloseRelationshipsQuality)}
	}
	return nil
}

type InvalidCategoryError struct {
	Field string
	Value string
}

func (e *InvalidCategoryError) Error() string {
	return "invalid value " + e.Value + " for " + e.Field
}
