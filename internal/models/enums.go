package models

// Priority is shared by tasks and follow-up actions.
type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
)

// PriorityRank returns the fixed sort rank: HIGH=3, MEDIUM=2, LOW=1.
func PriorityRank(p Priority) int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	}
	return 0
}

type CompanySize string

const (
	CompanySizeStartup    CompanySize = "STARTUP"
	CompanySizeSmall      CompanySize = "SMALL"
	CompanySizeMedium     CompanySize = "MEDIUM"
	CompanySizeLarge      CompanySize = "LARGE"
	CompanySizeEnterprise CompanySize = "ENTERPRISE"
	CompanySizeUnknown    CompanySize = "UNKNOWN"
)

type CompanyStatus string

const (
	CompanyStatusOpportunity CompanyStatus = "OPPORTUNITY"
	CompanyStatusTarget      CompanyStatus = "TARGET"
	CompanyStatusResearch    CompanyStatus = "RESEARCH"
	CompanyStatusWatching    CompanyStatus = "WATCHING"
	CompanyStatusArchived    CompanyStatus = "ARCHIVED"
)

// CompanyStatusRank orders company listings: OPPORTUNITY first, ARCHIVED last.
func CompanyStatusRank(s CompanyStatus) int {
	switch s {
	case CompanyStatusOpportunity:
		return 0
	case CompanyStatusTarget:
		return 1
	case CompanyStatusResearch:
		return 2
	case CompanyStatusWatching:
		return 3
	case CompanyStatusArchived:
		return 4
	}
	return 5
}

type ContactType string

const (
	ContactTypeRecruiter     ContactType = "RECRUITER"
	ContactTypeHiringManager ContactType = "HIRING_MANAGER"
	ContactTypeReferral      ContactType = "REFERRAL"
	ContactTypeColleague     ContactType = "COLLEAGUE"
	ContactTypeOther         ContactType = "OTHER"
)

type CommunicationType string

const (
	CommunicationTypeEmail    CommunicationType = "EMAIL"
	CommunicationTypePhone    CommunicationType = "PHONE"
	CommunicationTypeLinkedIn CommunicationType = "LINKEDIN"
	CommunicationTypeText     CommunicationType = "TEXT"
	CommunicationTypeMeeting  CommunicationType = "MEETING"
	CommunicationTypeOther    CommunicationType = "OTHER"
)

type TaskCategory string

const (
	TaskCategoryApplication   TaskCategory = "APPLICATION"
	TaskCategoryFollowUp      TaskCategory = "FOLLOW_UP"
	TaskCategoryInterviewPrep TaskCategory = "INTERVIEW_PREP"
	TaskCategoryNetworking    TaskCategory = "NETWORKING"
	TaskCategoryResume        TaskCategory = "RESUME"
	TaskCategoryOther         TaskCategory = "OTHER"
)

type ResearchType string

const (
	ResearchTypeContact     ResearchType = "CONTACT"
	ResearchTypeCompany     ResearchType = "COMPANY"
	ResearchTypeIndustry    ResearchType = "INDUSTRY"
	ResearchTypeCompetitive ResearchType = "COMPETITIVE"
	ResearchTypeGeneral     ResearchType = "GENERAL"
)

type ResearchImportance string

const (
	ResearchImportanceLow    ResearchImportance = "LOW"
	ResearchImportanceMedium ResearchImportance = "MEDIUM"
	ResearchImportanceHigh   ResearchImportance = "HIGH"
	ResearchImportanceUrgent ResearchImportance = "URGENT"
)

// ResearchTargetKind tags the polymorphic reference on Research.
type ResearchTargetKind string

const (
	ResearchTargetContact     ResearchTargetKind = "CONTACT"
	ResearchTargetApplication ResearchTargetKind = "APPLICATION"
	ResearchTargetCompany     ResearchTargetKind = "COMPANY"
)

type ResearchLinkType string

const (
	ResearchLinkTypeArticle     ResearchLinkType = "ARTICLE"
	ResearchLinkTypeVideo       ResearchLinkType = "VIDEO"
	ResearchLinkTypeSocial      ResearchLinkType = "SOCIAL"
	ResearchLinkTypeCompanyPage ResearchLinkType = "COMPANY_PAGE"
	ResearchLinkTypeNews        ResearchLinkType = "NEWS"
	ResearchLinkTypeGlassdoor   ResearchLinkType = "GLASSDOOR"
	ResearchLinkTypeLinkedIn    ResearchLinkType = "LINKEDIN"
	ResearchLinkTypeGitHub      ResearchLinkType = "GITHUB"
	ResearchLinkTypeOther       ResearchLinkType = "OTHER"
)
