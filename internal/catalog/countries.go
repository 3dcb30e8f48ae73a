package catalog

import "github.com/simslyfe/server/internal/domain/life"

// schoolLadder is the stage order shared by every country; only the US
// and AU catalogs populate the full post-secondary tail.
var schoolLadder = []life.Stage{
	life.StagePreschool,
	life.StagePrimary,
	life.StageSecondary,
	life.StageCommunity,
	life.StageUniversity,
	life.StageGraduate,
	life.StageVocational,
	life.StageOnline,
}

// Compulsory-school ages chain per country: a public stage's duration
// lands completion exactly on the next stage's required age, so the
// completion handover can re-enroll without a gap year.
var countries = map[string]Entry{
	"AU": {
		Code:     "AU",
		Name:     "Australia",
		Currency: "$",
		Stages:   schoolLadder,
		Courses: []Course{
			{
				ID: "au_preschool_public", Name: "Public Preschool", Stage: life.StagePreschool,
				Duration: 2, Cost: 0, Public: true, RequiredAge: 3,
				Description: "Play-based early learning.",
			},
			{
				ID: "au_preschool_montessori", Name: "Montessori Preschool", Stage: life.StagePreschool,
				Duration: 2, Cost: 3000, RequiredAge: 3,
				Description: "Fee-paying early learning with smaller groups.",
			},
			{
				ID: "au_primary_public", Name: "Public Primary School", Stage: life.StagePrimary,
				Duration: 7, Cost: 0, Public: true, RequiredAge: 5,
				GrantsStatus: statusOf(life.StatusPrimary),
			},
			{
				ID: "au_primary_private", Name: "Private Primary School", Stage: life.StagePrimary,
				Duration: 7, Cost: 9000, RequiredAge: 5,
				GrantsStatus: statusOf(life.StatusPrimary),
			},
			{
				ID: "au_secondary_public", Name: "Public Secondary School", Stage: life.StageSecondary,
				Duration: 6, Cost: 0, Public: true, RequiredAge: 12,
				RequiredStatus: life.StatusPrimary,
				GrantsStatus:   statusOf(life.StatusSecondary),
			},
			{
				ID: "au_secondary_private", Name: "Private Secondary School", Stage: life.StageSecondary,
				Duration: 6, Cost: 15000, RequiredAge: 12,
				RequiredStatus: life.StatusPrimary,
				GrantsStatus:   statusOf(life.StatusSecondary),
			},
			{
				ID: "au_tafe_diploma", Name: "TAFE Diploma", Stage: life.StageCommunity,
				Duration: 2, Cost: 4000, RequiredStatus: life.StatusSecondary,
				GrantsStatus: statusOf(life.StatusAssociate),
				Description:  "Vocationally oriented diploma, a stepping stone to university.",
			},
			{
				ID: "au_uni_bachelor", Name: "Bachelor Degree", Stage: life.StageUniversity,
				Duration: 3, Cost: 30000, RequiredStatus: life.StatusSecondary,
				MinGPA: 2.5, RequiredExam: "ATAR",
				AlternateEntry: &AlternateEntry{MinStatus: life.StatusAssociate, MinGPA: 2.8},
				BlockedBy:      []string{"au_trade_electrician"},
				GrantsStatus:   statusOf(life.StatusBachelor),
				Majors:         []string{"Arts", "Science", "Engineering", "Business", "Law"},
			},
			{
				ID: "au_uni_master", Name: "Master Degree", Stage: life.StageGraduate,
				Duration: 2, Cost: 40000, RequiredStatus: life.StatusBachelor,
				MinGPA:       3.0,
				GrantsStatus: statusOf(life.StatusMaster),
				Majors:       []string{"Science", "Engineering", "Business", "Law"},
			},
			{
				ID: "au_trade_electrician", Name: "Electrician Apprenticeship", Stage: life.StageVocational,
				Duration: 4, Cost: 0, Public: true, RequiredAge: 16,
				RequiredStatus: life.StatusSecondary,
				Description:    "Paid apprenticeship; closes the academic path.",
			},
			{
				ID: "au_online_cert", Name: "Online Short Course", Stage: life.StageOnline,
				Duration: 1, Cost: 500,
				Skill: &SkillPrereq{Stat: life.StatSmarts, Min: 30},
			},
		},
	},
	"US": {
		Code:     "US",
		Name:     "United States",
		Currency: "$",
		Stages:   schoolLadder,
		Courses: []Course{
			{
				ID: "us_preschool_public", Name: "Preschool", Stage: life.StagePreschool,
				Duration: 2, Cost: 0, Public: true, RequiredAge: 3,
			},
			{
				ID: "us_preschool_private", Name: "Private Preschool", Stage: life.StagePreschool,
				Duration: 2, Cost: 4000, RequiredAge: 3,
			},
			{
				ID: "us_elementary", Name: "Elementary School", Stage: life.StagePrimary,
				Duration: 6, Cost: 0, Public: true, RequiredAge: 6,
				GrantsStatus: statusOf(life.StatusPrimary),
			},
			{
				ID: "us_elementary_private", Name: "Private Elementary School", Stage: life.StagePrimary,
				Duration: 6, Cost: 12000, RequiredAge: 6,
				GrantsStatus: statusOf(life.StatusPrimary),
			},
			{
				ID: "us_high_school", Name: "High School", Stage: life.StageSecondary,
				Duration: 6, Cost: 0, Public: true, RequiredAge: 12,
				RequiredStatus: life.StatusPrimary,
				GrantsStatus:   statusOf(life.StatusSecondary),
			},
			{
				ID: "us_community_college", Name: "Community College", Stage: life.StageCommunity,
				Duration: 2, Cost: 7000, RequiredStatus: life.StatusSecondary,
				GrantsStatus: statusOf(life.StatusAssociate),
			},
			{
				ID: "us_university", Name: "State University", Stage: life.StageUniversity,
				Duration: 4, Cost: 40000, RequiredStatus: life.StatusSecondary,
				MinGPA: 2.5, RequiredExam: "SAT",
				AlternateEntry: &AlternateEntry{MinStatus: life.StatusAssociate, MinGPA: 3.0},
				BlockedBy:      []string{"us_trade_welding"},
				GrantsStatus:   statusOf(life.StatusBachelor),
				Majors:         []string{"Computer Science", "Biology", "Economics", "History", "Mechanical Engineering"},
			},
			{
				ID: "us_grad_school", Name: "Graduate School", Stage: life.StageGraduate,
				Duration: 2, Cost: 50000, RequiredStatus: life.StatusBachelor,
				MinGPA:       3.0,
				GrantsStatus: statusOf(life.StatusMaster),
				Majors:       []string{"Computer Science", "Biology", "Economics", "Business"},
			},
			{
				ID: "us_executive_mba", Name: "Executive MBA", Stage: life.StageGraduate,
				Duration: 2, Cost: 60000, RequiredStatus: life.StatusBachelor,
				WorkYears:    3,
				GrantsStatus: statusOf(life.StatusMaster),
				Description:  "For working professionals; admission weighs experience over GPA.",
			},
			{
				ID: "us_trade_welding", Name: "Welding Trade Program", Stage: life.StageVocational,
				Duration: 2, Cost: 3000, RequiredAge: 16,
				RequiredStatus: life.StatusSecondary,
				Description:    "Certified trade program; closes the academic path.",
			},
			{
				ID: "us_online_cert", Name: "Online Certificate", Stage: life.StageOnline,
				Duration: 1, Cost: 800,
				Skill: &SkillPrereq{Stat: life.StatSmarts, Min: 40},
			},
		},
	},
	"GB": {
		Code:     "GB",
		Name:     "United Kingdom",
		Currency: "£",
		Stages:   schoolLadder,
		Courses: []Course{
			{
				ID: "gb_nursery", Name: "Nursery School", Stage: life.StagePreschool,
				Duration: 2, Cost: 0, Public: true, RequiredAge: 3,
			},
			{
				ID: "gb_primary", Name: "Primary School", Stage: life.StagePrimary,
				Duration: 6, Cost: 0, Public: true, RequiredAge: 5,
				GrantsStatus: statusOf(life.StatusPrimary),
			},
			{
				ID: "gb_secondary", Name: "Secondary School", Stage: life.StageSecondary,
				Duration: 7, Cost: 0, Public: true, RequiredAge: 11,
				RequiredStatus: life.StatusPrimary,
				GrantsStatus:   statusOf(life.StatusSecondary),
			},
			{
				ID: "gb_uni_bachelor", Name: "Bachelor's Degree", Stage: life.StageUniversity,
				Duration: 3, Cost: 27000, RequiredStatus: life.StatusSecondary,
				MinGPA: 2.5, RequiredExam: "A-Levels",
				GrantsStatus: statusOf(life.StatusBachelor),
				Majors:       []string{"Literature", "Physics", "Economics", "Law"},
			},
		},
	},
	"DE": {
		Code:     "DE",
		Name:     "Germany",
		Currency: "€",
		Stages:   schoolLadder,
		Courses: []Course{
			{
				ID: "de_kita", Name: "Kindergarten", Stage: life.StagePreschool,
				Duration: 2, Cost: 0, Public: true, RequiredAge: 3,
			},
			{
				ID: "de_grundschule", Name: "Grundschule", Stage: life.StagePrimary,
				Duration: 4, Cost: 0, Public: true, RequiredAge: 6,
				GrantsStatus: statusOf(life.StatusPrimary),
			},
			{
				ID: "de_gymnasium", Name: "Gymnasium", Stage: life.StageSecondary,
				Duration: 8, Cost: 0, Public: true, RequiredAge: 10,
				RequiredStatus: life.StatusPrimary,
				GrantsStatus:   statusOf(life.StatusSecondary),
			},
			{
				ID: "de_uni_bachelor", Name: "Universität Bachelor", Stage: life.StageUniversity,
				Duration: 3, Cost: 1500, RequiredStatus: life.StatusSecondary,
				MinGPA: 2.5, RequiredExam: "Abitur",
				GrantsStatus: statusOf(life.StatusBachelor),
				Majors:       []string{"Maschinenbau", "Informatik", "Philosophie"},
			},
		},
	},
	"FR": {
		Code:     "FR",
		Name:     "France",
		Currency: "€",
		Stages:   schoolLadder,
		Courses: []Course{
			{
				ID: "fr_maternelle", Name: "École Maternelle", Stage: life.StagePreschool,
				Duration: 2, Cost: 0, Public: true, RequiredAge: 3,
			},
			{
				ID: "fr_primaire", Name: "École Primaire", Stage: life.StagePrimary,
				Duration: 5, Cost: 0, Public: true, RequiredAge: 6,
				GrantsStatus: statusOf(life.StatusPrimary),
			},
			{
				ID: "fr_college", Name: "Collège", Stage: life.StageSecondary,
				Duration: 7, Cost: 0, Public: true, RequiredAge: 11,
				RequiredStatus: life.StatusPrimary,
				GrantsStatus:   statusOf(life.StatusSecondary),
			},
			{
				ID: "fr_uni_licence", Name: "Licence", Stage: life.StageUniversity,
				Duration: 3, Cost: 2000, RequiredStatus: life.StatusSecondary,
				MinGPA: 2.5, RequiredExam: "Baccalauréat",
				GrantsStatus: statusOf(life.StatusBachelor),
				Majors:       []string{"Lettres", "Sciences", "Droit"},
			},
		},
	},
}
