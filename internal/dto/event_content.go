package dto

// Create payloads carry the value rules for each content kind. Update
// payloads are permissive allow-lists: only JSON types and formats the
// columns cannot store are rejected.

type CreateSummaryRequest struct {
	Summary string `json:"summary" validate:"filled"`
}

type UpdateSummaryRequest struct {
	Summary *string `json:"summary"`
}

type CreateThemeRequest struct {
	Theme       string  `json:"theme" validate:"required,max=255"`
	Description *string `json:"description"`
}

type UpdateThemeRequest struct {
	Theme       *string          `json:"theme"`
	Description Optional[string] `json:"description"`
}

type CreateProgrammeRequest struct {
	Title       string  `json:"title" validate:"required,max=255"`
	Description *string `json:"description"`
	StartTime   *string `json:"start_time" validate:"omitnil,timestamp"`
	EndTime     *string `json:"end_time" validate:"omitnil,timestamp"`
	Location    *string `json:"location" validate:"omitnil,max=255"`
	Speaker     *string `json:"speaker" validate:"omitnil,max=255"`
	Order       *int    `json:"order"`
}

type UpdateProgrammeRequest struct {
	Title       *string          `json:"title"`
	Description Optional[string] `json:"description"`
	StartTime   Optional[string] `json:"start_time" validate:"omitempty,timestamp"`
	EndTime     Optional[string] `json:"end_time" validate:"omitempty,timestamp"`
	Location    Optional[string] `json:"location"`
	Speaker     Optional[string] `json:"speaker"`
	Order       *int             `json:"order"`
}

type CreateResourceRequest struct {
	Title       string  `json:"title" validate:"required,max=255"`
	Description *string `json:"description"`
	FilePath    *string `json:"file_path"`
	FileType    *string `json:"file_type"`
	URL         *string `json:"url"`
}

type UpdateResourceRequest struct {
	Title       *string          `json:"title"`
	Description Optional[string] `json:"description"`
	FilePath    Optional[string] `json:"file_path"`
	FileType    Optional[string] `json:"file_type"`
	URL         Optional[string] `json:"url"`
}

type CreateSpeakerRequest struct {
	TopicID      *string `json:"topic_id" validate:"omitempty,uuid"`
	Name         string  `json:"name" validate:"required,max=255"`
	Title        *string `json:"title" validate:"omitnil,max=255"`
	Organization *string `json:"organization" validate:"omitnil,max=255"`
	Bio          *string `json:"bio"`
	Photo        *string `json:"photo"`
	Email        *string `json:"email" validate:"omitempty,email"`
	LinkedIn     *string `json:"linkedin"`
	Twitter      *string `json:"twitter"`
	Order        *int    `json:"order"`
}

type UpdateSpeakerRequest struct {
	TopicID      Optional[string] `json:"topic_id" validate:"omitempty,uuid"`
	Name         *string          `json:"name"`
	Title        Optional[string] `json:"title"`
	Organization Optional[string] `json:"organization"`
	Bio          Optional[string] `json:"bio"`
	Photo        Optional[string] `json:"photo"`
	Email        Optional[string] `json:"email"`
	LinkedIn     Optional[string] `json:"linkedin"`
	Twitter      Optional[string] `json:"twitter"`
	Order        *int             `json:"order"`
}

type CreateSponsorRequest struct {
	Name        string  `json:"name" validate:"required,max=255"`
	Tier        *string `json:"tier" validate:"omitnil,max=255"`
	Logo        *string `json:"logo"`
	Website     *string `json:"website"`
	Description *string `json:"description"`
	Order       *int    `json:"order"`
}

type UpdateSponsorRequest struct {
	Name        *string          `json:"name"`
	Tier        Optional[string] `json:"tier"`
	Logo        Optional[string] `json:"logo"`
	Website     Optional[string] `json:"website"`
	Description Optional[string] `json:"description"`
	Order       *int             `json:"order"`
}

type CreateFAQRequest struct {
	Question string `json:"question" validate:"filled"`
	Answer   string `json:"answer" validate:"filled"`
	Order    *int   `json:"order"`
}

type UpdateFAQRequest struct {
	Question *string `json:"question"`
	Answer   *string `json:"answer"`
	Order    *int    `json:"order"`
}

type CreateMediaRequest struct {
	Title       string  `json:"title" validate:"required,max=255"`
	Type        *string `json:"type"`
	FilePath    string  `json:"file_path" validate:"filled"`
	Thumbnail   *string `json:"thumbnail"`
	Description *string `json:"description"`
	Order       *int    `json:"order"`
}

type UpdateMediaRequest struct {
	Title       *string          `json:"title"`
	Type        Optional[string] `json:"type"`
	FilePath    *string          `json:"file_path"`
	Thumbnail   Optional[string] `json:"thumbnail"`
	Description Optional[string] `json:"description"`
	Order       *int             `json:"order"`
}

type CreateGalleryRequest struct {
	Title     *string `json:"title" validate:"omitnil,max=255"`
	ImagePath string  `json:"image_path" validate:"filled"`
	Caption   *string `json:"caption"`
	Order     *int    `json:"order"`
}

type UpdateGalleryRequest struct {
	Title     Optional[string] `json:"title"`
	ImagePath *string          `json:"image_path"`
	Caption   Optional[string] `json:"caption"`
	Order     *int             `json:"order"`
}

type CreateAttendanceRequest struct {
	Name             string  `json:"name" validate:"required,max=255"`
	Email            string  `json:"email" validate:"required,email"`
	Phone            *string `json:"phone"`
	Organization     *string `json:"organization"`
	RegistrationType *string `json:"registration_type"`
	CheckedIn        *bool   `json:"checked_in"`
	CheckedInAt      *string `json:"checked_in_at" validate:"omitnil,timestamp"`
}

type UpdateAttendanceRequest struct {
	Name             *string          `json:"name"`
	Email            *string          `json:"email"`
	Phone            Optional[string] `json:"phone"`
	Organization     Optional[string] `json:"organization"`
	RegistrationType Optional[string] `json:"registration_type"`
	CheckedIn        *bool            `json:"checked_in"`
	CheckedInAt      Optional[string] `json:"checked_in_at" validate:"omitempty,timestamp"`
}
