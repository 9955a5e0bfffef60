package cmd

import (
	"gorm.io/gorm"

	"github.com/doganiot/mywordismyword/models"
)

// System templates. CreatorID stays nil so they never show up as user
// content and cannot be edited or deleted through the API.
var systemTemplates = []models.ContractTemplate{
	{
		Title:        "Friendship Agreement",
		TemplateType: models.TemplateFriendship,
		Description:  "A light-hearted pact between friends to keep promises to each other.",
		Content: "We, [Full Name] and [Full Name], agree to stay honest with each other, " +
			"to show up when it matters and to settle disagreements by talking, not sulking. " +
			"Broken promises are repaid with coffee.",
		Category: "personal",
		Tags:     "friendship,promise",
		IsPublic: true,
		IsActive: true,
	},
	{
		Title:        "Meeting Commitment",
		TemplateType: models.TemplateMeeting,
		Description:  "A promise to show up on time at an agreed place.",
		Content: "[Full Name] commits to meeting [Full Name] at the agreed time and place. " +
			"Being more than 15 minutes late without notice counts as a broken promise.",
		Category: "personal",
		Tags:     "meeting,punctuality",
		IsPublic: true,
		IsActive: true,
	},
	{
		Title:        "Sports Challenge",
		TemplateType: models.TemplateSports,
		Description:  "A training commitment between workout partners.",
		Content: "[Full Name] and [Full Name] commit to training together at least three times " +
			"a week for the duration of this contract. Skipped sessions must be made up within the same week.",
		Category: "health",
		Tags:     "sports,training,challenge",
		IsPublic: true,
		IsActive: true,
	},
	{
		Title:        "Diet Pact",
		TemplateType: models.TemplateDiet,
		Description:  "Mutual accountability for healthy eating.",
		Content: "[Full Name] promises to follow the agreed meal plan and to report honestly " +
			"on progress every week. The witness may demand receipts.",
		Category: "health",
		Tags:     "diet,health",
		IsPublic: true,
		IsActive: true,
	},
	{
		Title:        "Study Buddy Agreement",
		TemplateType: models.TemplateStudy,
		Description:  "A joint study schedule with mutual accountability.",
		Content: "[Full Name] and [Full Name] agree to study together according to the attached " +
			"schedule and to check each other's progress before every exam.",
		Category: "education",
		Tags:     "study,exam",
		IsPublic: true,
		IsActive: true,
	},
	{
		Title:        "Travel Plan",
		TemplateType: models.TemplateTravel,
		Description:  "Shared responsibilities for a trip taken together.",
		Content: "[Full Name] and [Full Name] commit to the agreed travel plan, split costs " +
			"evenly and do not abandon each other at airports.",
		Category: "leisure",
		Tags:     "travel,trip",
		IsPublic: true,
		IsActive: true,
	},
	{
		Title:        "Household Duties",
		TemplateType: models.TemplateHousehold,
		Description:  "Who cleans what, and when.",
		Content: "[Full Name] and [Full Name] divide the household duties as agreed below. " +
			"Swaps are allowed with at least a day's notice.",
		Category: "home",
		Tags:     "household,chores",
		IsPublic: true,
		IsActive: true,
	},
	{
		Title:        "Cooking Promise",
		TemplateType: models.TemplateCooking,
		Description:  "A promise to cook for someone.",
		Content: "[Full Name] promises to cook the agreed meal for [Full Name] on the agreed date. " +
			"Ordering takeout and plating it does not count.",
		Category: "home",
		Tags:     "cooking,meal",
		IsPublic: true,
		IsActive: true,
	},
	{
		Title:        "Delivery Promise",
		TemplateType: models.TemplateDelivery,
		Description:  "A commitment to hand something over by a deadline.",
		Content: "[Full Name] commits to delivering the agreed item to [Full Name] " +
			"no later than the agreed date, in the agreed condition.",
		Category: "personal",
		Tags:     "delivery,deadline",
		IsPublic: true,
		IsActive: true,
	},
}

func seedTemplates(db *gorm.DB) error {
	for i := range systemTemplates {
		tpl := systemTemplates[i]
		err := firstOrCreate(db, map[string]any{
			"title":      tpl.Title,
			"creator_id": nil,
		}, &tpl)
		if err != nil {
			return err
		}
	}
	return nil
}
