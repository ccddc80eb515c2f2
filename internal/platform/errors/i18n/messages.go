package i18n

// Error codes must match the codes defined in internal/platform/errors/codes.go.
// These are duplicated as strings to avoid an import cycle.
const (
	CodeGradeInvalidValue             = "GRADE_INVALID_VALUE"
	CodeGradeInvalidLabel             = "GRADE_INVALID_LABEL"
	CodeRatingInvalidValue            = "RATING_INVALID_VALUE"
	CodeRatingMismatchedRealms        = "RATING_MISMATCHED_REALMS"
	CodeRealmEmptyName                = "REALM_EMPTY_NAME"
	CodeRealmNotMember                = "REALM_NOT_MEMBER"
	CodeRealmTargetMembershipRequired = "REALM_TARGET_MEMBERSHIP_REQUIRED"
	CodeTraitEmptyName                = "TRAIT_EMPTY_NAME"
	CodeTraitInvalidDisplayMode       = "TRAIT_INVALID_DISPLAY_MODE"
	CodeTraitNameTaken                = "TRAIT_NAME_TAKEN"
	CodeCharacterEmptyName            = "CHARACTER_EMPTY_NAME"
	CodeListInvalidFilter             = "LIST_INVALID_FILTER"
	CodeListInvalidPageToken          = "LIST_INVALID_PAGE_TOKEN"
	CodeUnauthenticated               = "UNAUTHENTICATED"
	CodeInvalidRequest                = "INVALID_REQUEST"
	CodeNotFound                      = "NOT_FOUND"
)

var enUS = map[Code]string{
	CodeGradeInvalidValue:             "Ratings must be between 1 and 20.",
	CodeGradeInvalidLabel:             `"{{.Label}}" is not a recognized grade.`,
	CodeRatingInvalidValue:            "Ratings must be a number from 1 to 20 or a grade from F to Z.",
	CodeRatingMismatchedRealms:        "This trait belongs to a different realm than the character.",
	CodeRealmEmptyName:                "Realm name is required.",
	CodeRealmNotMember:                "You are not a member of this realm.",
	CodeRealmTargetMembershipRequired: "You must be a member of the destination realm to move this character.",
	CodeTraitEmptyName:                "Trait name is required.",
	CodeTraitInvalidDisplayMode:       "Display mode must be number or grade.",
	CodeTraitNameTaken:                `This realm already has a trait named "{{.Name}}".`,
	CodeCharacterEmptyName:            "Character name is required.",
	CodeListInvalidFilter:             "The list filter could not be understood.",
	CodeListInvalidPageToken:          "The page token is invalid.",
	CodeUnauthenticated:               "Sign in to continue.",
	CodeInvalidRequest:                "The request is invalid.",
	CodeNotFound:                      "The requested item was not found.",
}

var ptBR = map[Code]string{
	CodeGradeInvalidValue:             "As avaliações devem estar entre 1 e 20.",
	CodeGradeInvalidLabel:             `"{{.Label}}" não é uma nota reconhecida.`,
	CodeRatingInvalidValue:            "A avaliação deve ser um número de 1 a 20 ou uma nota de F a Z.",
	CodeRatingMismatchedRealms:        "Este traço pertence a um reino diferente do personagem.",
	CodeRealmEmptyName:                "O nome do reino é obrigatório.",
	CodeRealmNotMember:                "Você não é membro deste reino.",
	CodeRealmTargetMembershipRequired: "Você precisa ser membro do reino de destino para mover este personagem.",
	CodeTraitEmptyName:                "O nome do traço é obrigatório.",
	CodeTraitInvalidDisplayMode:       "O modo de exibição deve ser número ou nota.",
	CodeTraitNameTaken:                `Este reino já possui um traço chamado "{{.Name}}".`,
	CodeCharacterEmptyName:            "O nome do personagem é obrigatório.",
	CodeListInvalidFilter:             "Não foi possível entender o filtro da lista.",
	CodeListInvalidPageToken:          "O token de página é inválido.",
	CodeUnauthenticated:               "Entre para continuar.",
	CodeInvalidRequest:                "A requisição é inválida.",
	CodeNotFound:                      "O item solicitado não foi encontrado.",
}
