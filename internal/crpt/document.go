// Package crpt implements a throttled client for the CRPT product marking
// registry: document model, request body assembly and the submitter that
// performs the registration call.
package crpt

// DocFormat is the wire format of the submitted document.
type DocFormat string

const (
	FormatManual DocFormat = "MANUAL"
	FormatXML    DocFormat = "XML"
	FormatCSV    DocFormat = "CSV"
)

// DocType identifies the registration operation.
type DocType string

const (
	TypeIntroduceGoods    DocType = "LP_INTRODUCE_GOODS"
	TypeIntroduceGoodsCSV DocType = "LP_INTRODUCE_GOODS_CSV"
	TypeIntroduceGoodsXML DocType = "LP_INTRODUCE_GOODS_XML"
)

// ProductGroup is the registry's product category tag.
type ProductGroup string

const (
	GroupClothes     ProductGroup = "CLOTHES"
	GroupShoes       ProductGroup = "SHOES"
	GroupTobacco     ProductGroup = "TOBACCO"
	GroupPerfumery   ProductGroup = "PERFUMERY"
	GroupTires       ProductGroup = "TIRES"
	GroupElectronics ProductGroup = "ELECTRONICS"
	GroupPharma      ProductGroup = "PHARMA"
	GroupMilk        ProductGroup = "MILK"
	GroupBicycle     ProductGroup = "BICYCLE"
	GroupWheelchairs ProductGroup = "WHEELCHAIRS"
)

// CertificateDoc is the kind of conformity document attached to a product.
type CertificateDoc string

const (
	ConformityCertificate CertificateDoc = "CONFORMITY_CERTIFICATE"
	ConformityDeclaration CertificateDoc = "CONFORMITY_DECLARATION"
)

// Document describes goods produced in the RF being introduced into
// circulation. Field names follow the registry schema.
type Document struct {
	Description     *Description `json:"description,omitempty"`
	DocID           string       `json:"doc_id"`
	DocStatus       string       `json:"doc_status"`
	DocType         string       `json:"doc_type"`
	ImportRequest   bool         `json:"importRequest,omitempty"`
	OwnerINN        string       `json:"owner_inn"`
	ParticipantINN  string       `json:"participant_inn"`
	ProducerINN     string       `json:"producer_inn"`
	ProductionDate  string       `json:"production_date"`
	ProductionType  string       `json:"production_type"`
	Products        []Product    `json:"products,omitempty"`
	RegDate         string       `json:"reg_date"`
	RegNumber       string       `json:"reg_number,omitempty"`
}

type Description struct {
	ParticipantINN string `json:"participantInn"`
}

type Product struct {
	CertificateDocument       CertificateDoc `json:"certificate_document,omitempty"`
	CertificateDocumentDate   string         `json:"certificate_document_date,omitempty"`
	CertificateDocumentNumber string         `json:"certificate_document_number,omitempty"`
	OwnerINN                  string         `json:"owner_inn"`
	ProducerINN               string         `json:"producer_inn"`
	ProductionDate            string         `json:"production_date"`
	TnvedCode                 string         `json:"tnved_code"`
	UitCode                   string         `json:"uit_code,omitempty"`
	UituCode                  string         `json:"uitu_code,omitempty"`
}

// body is the envelope POSTed to the document-creation endpoint. The document
// and the detached signature travel base64-encoded.
type body struct {
	DocumentFormat  DocFormat    `json:"document_format"`
	ProductDocument string       `json:"product_document"`
	ProductGroup    ProductGroup `json:"product_group,omitempty"`
	Signature       string       `json:"signature"`
	Type            DocType      `json:"type"`
}
