package http

import (
	"golang.org/x/text/language"
)

var (
	supportedLanguages = []language.Tag{language.English, language.BrazilianPortuguese}
	languageMatcher    = language.NewMatcher(supportedLanguages)
)

// messages holds the operator-facing text per error code, indexed like supportedLanguages.
var messages = map[string][2]string{
	"invalid_request": {
		"The request is malformed.",
		"A requisição está malformada.",
	},
	"invalid_input": {
		"The request contains invalid data.",
		"A requisição contém dados inválidos.",
	},
	"not_found": {
		"The requested content was not found.",
		"O conteúdo solicitado não foi encontrado.",
	},
	"configuration_error": {
		"The AI provider API key is not configured.",
		"A chave de API do provedor de IA não está configurada.",
	},
	"api_error": {
		"The AI provider request failed.",
		"A requisição ao provedor de IA falhou.",
	},
	"invalid_response": {
		"The AI provider returned an unexpected response.",
		"O provedor de IA retornou uma resposta inesperada.",
	},
	"no_faq_found": {
		"No FAQ could be extracted from the AI response.",
		"Nenhum FAQ pôde ser extraído da resposta da IA.",
	},
	"validation_error": {
		"The generated FAQ did not pass validation.",
		"O FAQ gerado não passou na validação.",
	},
	"store_error": {
		"The content could not be saved.",
		"Não foi possível salvar o conteúdo.",
	},
	"report_not_found": {
		"The report was not found or has expired.",
		"O relatório não foi encontrado ou expirou.",
	},
	"file_required": {
		"Upload a CSV file in the csv_file field.",
		"Envie um arquivo CSV no campo csv_file.",
	},
	"rate_limit_exceeded": {
		"Too many requests, try again shortly.",
		"Muitas requisições, tente novamente em instantes.",
	},
	"internal_error": {
		"Something went wrong.",
		"Algo deu errado.",
	},
}

// localize returns the message for code in the best language for acceptLanguage,
// or "" when the code has no translation.
func localize(code, acceptLanguage string) string {
	texts, ok := messages[code]
	if !ok {
		return ""
	}
	return texts[languageIndex(acceptLanguage)]
}

func languageIndex(acceptLanguage string) int {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return 0
	}
	_, index, confidence := languageMatcher.Match(tags...)
	if confidence == language.No {
		return 0
	}
	return index
}
