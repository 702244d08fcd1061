package service

import (
	"context"
	"strings"
	"time"

	"github.com/noah-isme/campus-events-api/internal/dto"
	"github.com/noah-isme/campus-events-api/internal/models"
)

var summaryKind = contentKind[models.Summary, dto.CreateSummaryRequest, dto.UpdateSummaryRequest]{
	label: "Summary",
	build: func(req dto.CreateSummaryRequest) models.Summary {
		return models.Summary{Summary: strings.TrimSpace(req.Summary)}
	},
	apply: func(item *models.Summary, req dto.UpdateSummaryRequest) {
		item.Summary = stringOr(req.Summary, item.Summary)
	},
}

var themeKind = contentKind[models.Theme, dto.CreateThemeRequest, dto.UpdateThemeRequest]{
	label: "Theme",
	build: func(req dto.CreateThemeRequest) models.Theme {
		return models.Theme{Theme: strings.TrimSpace(req.Theme), Description: nullableString(req.Description)}
	},
	apply: func(item *models.Theme, req dto.UpdateThemeRequest) {
		item.Theme = stringOr(req.Theme, item.Theme)
		applyString(req.Description, &item.Description)
	},
}

var programmeKind = contentKind[models.Programme, dto.CreateProgrammeRequest, dto.UpdateProgrammeRequest]{
	label: "Programme",
	build: func(req dto.CreateProgrammeRequest) models.Programme {
		return models.Programme{
			Title:       strings.TrimSpace(req.Title),
			Description: nullableString(req.Description),
			StartTime:   optionalTime(req.StartTime),
			EndTime:     optionalTime(req.EndTime),
			Location:    nullableString(req.Location),
			Speaker:     nullableString(req.Speaker),
			Order:       intOr(req.Order, 0),
		}
	},
	check: func(_ context.Context, _ string, req dto.CreateProgrammeRequest, fields fieldErrors) error {
		checkDateOrder(fields, "end_time", "start_time", req.EndTime, req.StartTime)
		return nil
	},
	apply: func(item *models.Programme, req dto.UpdateProgrammeRequest) {
		item.Title = stringOr(req.Title, item.Title)
		applyString(req.Description, &item.Description)
		if req.StartTime.Set {
			item.StartTime = optionalTime(req.StartTime.Value)
		}
		if req.EndTime.Set {
			item.EndTime = optionalTime(req.EndTime.Value)
		}
		applyString(req.Location, &item.Location)
		applyString(req.Speaker, &item.Speaker)
		item.Order = intOr(req.Order, item.Order)
	},
}

var resourceKind = contentKind[models.Resource, dto.CreateResourceRequest, dto.UpdateResourceRequest]{
	label: "Resource",
	build: func(req dto.CreateResourceRequest) models.Resource {
		return models.Resource{
			Title:       strings.TrimSpace(req.Title),
			Description: nullableString(req.Description),
			FilePath:    nullableString(req.FilePath),
			FileType:    nullableString(req.FileType),
			URL:         nullableString(req.URL),
		}
	},
	apply: func(item *models.Resource, req dto.UpdateResourceRequest) {
		item.Title = stringOr(req.Title, item.Title)
		applyString(req.Description, &item.Description)
		applyString(req.FilePath, &item.FilePath)
		applyString(req.FileType, &item.FileType)
		applyString(req.URL, &item.URL)
	},
}

func speakerKind(topics topicMembership) contentKind[models.Speaker, dto.CreateSpeakerRequest, dto.UpdateSpeakerRequest] {
	return contentKind[models.Speaker, dto.CreateSpeakerRequest, dto.UpdateSpeakerRequest]{
		label: "Speaker",
		build: func(req dto.CreateSpeakerRequest) models.Speaker {
			return models.Speaker{
				TopicID:      nullableString(req.TopicID),
				Name:         strings.TrimSpace(req.Name),
				Title:        nullableString(req.Title),
				Organization: nullableString(req.Organization),
				Bio:          nullableString(req.Bio),
				Photo:        nullableString(req.Photo),
				Email:        nullableString(req.Email),
				LinkedIn:     nullableString(req.LinkedIn),
				Twitter:      nullableString(req.Twitter),
				Order:        intOr(req.Order, 0),
			}
		},
		check: func(ctx context.Context, eventID string, req dto.CreateSpeakerRequest, fields fieldErrors) error {
			return checkSpeakerTopic(ctx, topics, fields, eventID, nullableString(req.TopicID))
		},
		checkUpdate: func(ctx context.Context, item *models.Speaker, req dto.UpdateSpeakerRequest, fields fieldErrors) error {
			if !req.TopicID.Set {
				return nil
			}
			return checkSpeakerTopic(ctx, topics, fields, item.EventID, nullableString(req.TopicID.Value))
		},
		apply: func(item *models.Speaker, req dto.UpdateSpeakerRequest) {
			applyString(req.TopicID, &item.TopicID)
			item.Name = stringOr(req.Name, item.Name)
			applyString(req.Title, &item.Title)
			applyString(req.Organization, &item.Organization)
			applyString(req.Bio, &item.Bio)
			applyString(req.Photo, &item.Photo)
			applyString(req.Email, &item.Email)
			applyString(req.LinkedIn, &item.LinkedIn)
			applyString(req.Twitter, &item.Twitter)
			item.Order = intOr(req.Order, item.Order)
		},
	}
}

// checkSpeakerTopic rejects a topic that is unknown or held by another event.
func checkSpeakerTopic(ctx context.Context, topics topicMembership, fields fieldErrors, eventID string, topicID *string) error {
	if topicID == nil {
		return nil
	}
	return fields.exists("topic_id", func() (bool, error) {
		return topics.BelongsToEvent(ctx, *topicID, eventID)
	})
}

var sponsorKind = contentKind[models.Sponsor, dto.CreateSponsorRequest, dto.UpdateSponsorRequest]{
	label: "Sponsor",
	build: func(req dto.CreateSponsorRequest) models.Sponsor {
		return models.Sponsor{
			Name:        strings.TrimSpace(req.Name),
			Tier:        nullableString(req.Tier),
			Logo:        nullableString(req.Logo),
			Website:     nullableString(req.Website),
			Description: nullableString(req.Description),
			Order:       intOr(req.Order, 0),
		}
	},
	apply: func(item *models.Sponsor, req dto.UpdateSponsorRequest) {
		item.Name = stringOr(req.Name, item.Name)
		applyString(req.Tier, &item.Tier)
		applyString(req.Logo, &item.Logo)
		applyString(req.Website, &item.Website)
		applyString(req.Description, &item.Description)
		item.Order = intOr(req.Order, item.Order)
	},
}

var faqKind = contentKind[models.FAQ, dto.CreateFAQRequest, dto.UpdateFAQRequest]{
	label: "FAQ",
	build: func(req dto.CreateFAQRequest) models.FAQ {
		return models.FAQ{
			Question: strings.TrimSpace(req.Question),
			Answer:   strings.TrimSpace(req.Answer),
			Order:    intOr(req.Order, 0),
		}
	},
	apply: func(item *models.FAQ, req dto.UpdateFAQRequest) {
		item.Question = stringOr(req.Question, item.Question)
		item.Answer = stringOr(req.Answer, item.Answer)
		item.Order = intOr(req.Order, item.Order)
	},
}

var mediaKind = contentKind[models.Media, dto.CreateMediaRequest, dto.UpdateMediaRequest]{
	label: "Media",
	build: func(req dto.CreateMediaRequest) models.Media {
		return models.Media{
			Title:       strings.TrimSpace(req.Title),
			Type:        nullableString(req.Type),
			FilePath:    strings.TrimSpace(req.FilePath),
			Thumbnail:   nullableString(req.Thumbnail),
			Description: nullableString(req.Description),
			Order:       intOr(req.Order, 0),
		}
	},
	apply: func(item *models.Media, req dto.UpdateMediaRequest) {
		item.Title = stringOr(req.Title, item.Title)
		applyString(req.Type, &item.Type)
		item.FilePath = stringOr(req.FilePath, item.FilePath)
		applyString(req.Thumbnail, &item.Thumbnail)
		applyString(req.Description, &item.Description)
		item.Order = intOr(req.Order, item.Order)
	},
}

var galleryKind = contentKind[models.Gallery, dto.CreateGalleryRequest, dto.UpdateGalleryRequest]{
	label: "Gallery",
	build: func(req dto.CreateGalleryRequest) models.Gallery {
		return models.Gallery{
			Title:     nullableString(req.Title),
			ImagePath: strings.TrimSpace(req.ImagePath),
			Caption:   nullableString(req.Caption),
			Order:     intOr(req.Order, 0),
		}
	},
	apply: func(item *models.Gallery, req dto.UpdateGalleryRequest) {
		applyString(req.Title, &item.Title)
		item.ImagePath = stringOr(req.ImagePath, item.ImagePath)
		applyString(req.Caption, &item.Caption)
		item.Order = intOr(req.Order, item.Order)
	},
}

var attendanceKind = contentKind[models.Attendance, dto.CreateAttendanceRequest, dto.UpdateAttendanceRequest]{
	label: "Attendance",
	build: func(req dto.CreateAttendanceRequest) models.Attendance {
		item := models.Attendance{
			Name:             strings.TrimSpace(req.Name),
			Email:            strings.ToLower(strings.TrimSpace(req.Email)),
			Phone:            nullableString(req.Phone),
			Organization:     nullableString(req.Organization),
			RegistrationType: nullableString(req.RegistrationType),
			CheckedIn:        boolOr(req.CheckedIn, false),
			CheckedInAt:      optionalTime(req.CheckedInAt),
		}
		stampCheckIn(&item)
		return item
	},
	apply: func(item *models.Attendance, req dto.UpdateAttendanceRequest) {
		item.Name = stringOr(req.Name, item.Name)
		if email := stringOr(req.Email, ""); email != "" {
			item.Email = strings.ToLower(email)
		}
		applyString(req.Phone, &item.Phone)
		applyString(req.Organization, &item.Organization)
		applyString(req.RegistrationType, &item.RegistrationType)
		item.CheckedIn = boolOr(req.CheckedIn, item.CheckedIn)
		if req.CheckedInAt.Set {
			item.CheckedInAt = optionalTime(req.CheckedInAt.Value)
		}
		stampCheckIn(item)
	},
}

// stampCheckIn records the check-in moment when an attendee is checked in
// without one.
func stampCheckIn(item *models.Attendance) {
	if item.CheckedIn && item.CheckedInAt == nil {
		now := utcNow()
		item.CheckedInAt = &now
	}
}

func optionalTime(raw *string) *time.Time {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil
	}
	t, err := ParseTimestamp(*raw)
	if err != nil {
		return nil
	}
	return &t
}
