package dispatch

import (
	"text/template"

	"github.com/crepdde/pddepack/internal/dossier"
)

// templateData is the placeholder set shared by every dispatch template.
type templateData struct {
	TipoPDDE    string
	Ano         string
	Escola      string
	CNPJ        string
	Presidente  string
	Processo    string
	DataExtenso string
}

// Template is one fixed dispatch document: a Markdown body plus the facts
// it cannot be issued without.
type Template struct {
	Seq      int
	ID       string
	Required []dossier.Field
	Body     *template.Template
}

// Templates is the fixed generation order. Dispatches are produced in this
// order regardless of the batch's document order.
var Templates = []Template{
	{
		Seq: 1,
		ID:  "encaminhamento",
		Required: []dossier.Field{
			dossier.FieldPDDEType, dossier.FieldFiscalYear,
			dossier.FieldSchoolName, dossier.FieldCNPJ,
		},
		Body: mustParse("encaminhamento", bodyEncaminhamento),
	},
	{
		Seq: 2,
		ID:  "analise",
		Required: []dossier.Field{
			dossier.FieldPDDEType, dossier.FieldFiscalYear,
			dossier.FieldSchoolName, dossier.FieldCECPresident,
		},
		Body: mustParse("analise", bodyAnalise),
	},
	{
		Seq: 3,
		ID:  "aprovacao",
		Required: []dossier.Field{
			dossier.FieldPDDEType, dossier.FieldFiscalYear,
			dossier.FieldSchoolName, dossier.FieldCECPresident,
			dossier.FieldCaseNumber,
		},
		Body: mustParse("aprovacao", bodyAprovacao),
	},
}

func mustParse(name, body string) *template.Template {
	return template.Must(template.New(name).Parse(body))
}

const bodyEncaminhamento = `À Gerência de Administração – E/CRE/GAD,

Encaminho a presente prestação de contas do Programa Dinheiro Direto na Escola – PDDE **{{.TipoPDDE}}/{{.Ano}}**, da **{{.Escola}}**, CNPJ **{{.CNPJ}}**, e declaro, para os devidos fins, a autenticidade dos documentos anexados.

Rio de Janeiro, {{.DataExtenso}}.
`

const bodyAnalise = `À Srª COORDENADORA DA CRE,

Após análise da documentação apresentada, informo que a prestação de contas referente ao Programa Dinheiro Direto na Escola – PDDE **{{.TipoPDDE}}/{{.Ano}}**, vinculada ao Conselho Escolar Comunitário (CEC) da **{{.Escola}}**, sob a presidência de **{{.Presidente}}**, encontra-se em **condições de aprovação**, por atender às normatizações e orientações vigentes do Fundo Nacional de Desenvolvimento da Educação – FNDE, aplicáveis à matéria.

Rio de Janeiro, {{.DataExtenso}}.

**GERÊNCIA DE ADMINISTRAÇÃO**

**Gerente II**
`

const bodyAprovacao = `**PUBLIQUE-SE.**

Processo: {{.Processo}}

Aprovo a prestação de contas referente ao Programa Dinheiro Direto na Escola – PDDE **{{.TipoPDDE}}/{{.Ano}}**, do Conselho Escolar Comunitário (CEC) da **{{.Escola}}**, sob a presidência de **{{.Presidente}}**.

Rio de Janeiro, {{.DataExtenso}}.

**COORDENADORIA REGIONAL DE EDUCAÇÃO**

**Coordenador I**
`
