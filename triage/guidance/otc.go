package guidance

import "github.com/carebridge/symptom-triage/triage/episode"

// otcEntry suggests over-the-counter options for a symptom category. These
// are never offered when the urgency calls for professional care.
type otcEntry struct {
	Category    episode.Category
	Suggestions []string
}

var otcTable = []otcEntry{
	{episode.CategoryHeadache, []string{
		"An over-the-counter pain reliever such as acetaminophen or ibuprofen, taken as directed on the label",
	}},
	{episode.CategoryFever, []string{
		"Acetaminophen or ibuprofen can help bring a fever down; follow the package dosing",
	}},
	{episode.CategoryRespiratory, []string{
		"Throat lozenges or saline nasal spray can take the edge off",
		"An over-the-counter decongestant may help if congestion is the main issue",
	}},
	{episode.CategoryGI, []string{
		"An oral rehydration solution helps replace lost fluids",
		"Bismuth subsalicylate can settle mild stomach upset",
	}},
	{episode.CategorySkin, []string{
		"An over-the-counter hydrocortisone cream or oral antihistamine can calm itching",
	}},
	{episode.CategoryMusculoskeletal, []string{
		"An over-the-counter anti-inflammatory such as ibuprofen, taken with food",
	}},
	{episode.CategoryPain, []string{
		"An over-the-counter pain reliever, taken as directed on the label",
	}},
}

// OTCSuggestions returns over-the-counter options for the category, or
// nothing when the urgency warrants professional care instead.
func OTCSuggestions(category episode.Category, urgency episode.Urgency) []string {
	if urgency == episode.UrgencyEmergency || urgency == episode.UrgencyUrgent {
		return nil
	}
	for _, e := range otcTable {
		if e.Category == category {
			return append([]string(nil), e.Suggestions...)
		}
	}
	return nil
}
