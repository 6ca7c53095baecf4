// Package texts holds the user-facing string tables and the catalogs of
// academic tracks and complaint categories. The conversation handlers treat
// this package as configuration: nothing here drives control flow.
package texts

import "fmt"

// DefaultLanguage is used when a conversation has no language selected yet.
const DefaultLanguage = "uz"

// Table holds all user-facing strings for one language.
type Table struct {
	LanguageSelection string

	Welcome             string // takes the user's full name
	WelcomeRegistration string

	Suggestion string
	Complaint  string
	Back       string

	EnterFullName               string
	EnterPhone                  string
	SelectCourse                string
	SelectDirection             string
	CourseSelected              string // takes the course label
	DirectionSelected           string // takes the direction label
	RegistrationCompleting      string
	RegistrationComplete        string
	RegistrationCompleteOffline string

	SelectCategory  string // takes the translated ticket type
	EnterMessage    string // takes the translated ticket type
	MessageTooShort string
	MessageTooLong  string
	MessageSpam     string

	MessageSubmitted        string // takes the translated ticket type
	MessageSubmittedOffline string // takes the translated ticket type

	ErrorOccurred     string
	InvalidName       string
	InvalidPhone      string
	MessageError      string
	RegistrationError string
	MenuError         string
	CallbackError     string

	HelpText string

	OfflineMode     string
	OfflineModeMenu string

	NextPage string
	PrevPage string

	PleaseRegister string
	UseMenu        string
	AdminOnly      string

	StatusBody           string // takes the backend state label and the two pending counts
	StatusBackendOnline  string
	StatusBackendOffline string

	AdminStats          string // takes the user and message totals
	AdminRecentUsers    string
	AdminRecentMessages string
	NoUsers             string
	NoMessages          string

	TicketTypes          map[string]string // suggestion/complaint -> localized noun
	Courses              []string
	Directions           map[string]string // direction key -> label
	Categories           map[string]string // category key -> label
	CategoryDescriptions map[string]string // category key -> description
}

// For returns the string table for lang, falling back to Uzbek.
func For(lang string) *Table {
	if t, ok := tables[lang]; ok {
		return t
	}
	return tables[DefaultLanguage]
}

// WelcomeText renders the main-menu greeting for a user.
func (t *Table) WelcomeText(fullName string) string {
	return fmt.Sprintf(t.Welcome, fullName)
}

// TicketTypeName returns the localized noun for a ticket type key.
func (t *Table) TicketTypeName(ticketType string) string {
	if name, ok := t.TicketTypes[ticketType]; ok {
		return name
	}
	return ticketType
}

// DirectionPages lists the direction keys shown per keyboard page.
var DirectionPages = [][]string{
	{"dasturiy_injiniring", "kompyuter_injiniringi", "bank_ishi", "moliya_texnologiyalar", "logistika", "iqtisodiyot"},
	{"buxgalteriya_hisobi", "turizm_mehmondostlik", "maktabgacha_talim", "boshlangich_talim", "maxsus_pedagogika", "ozbek_tili_adabiyoti"},
	{"xorijiy_til_adabiyoti", "tarix", "matematika", "psixologiya", "arxitektura", "ijtimoiy_ish"},
}

// CategoryOrder lists complaint category keys in display order.
var CategoryOrder = []string{"sharoit", "qabul", "dars", "teacher", "tutor", "dekanat", "other"}

// CategoryCodes maps a category key to the English substatus code sent to
// the backend for complaints.
var CategoryCodes = map[string]string{
	"sharoit": "Conditions",
	"qabul":   "Admission",
	"dars":    "Learning Process",
	"teacher": "Teacher",
	"tutor":   "Tutor",
	"dekanat": "Dean Office",
	"other":   "Other",
}
