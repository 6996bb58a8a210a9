package importing

import "fmt"

type FieldRole string

const (
	RoleText   FieldRole = "text"
	RoleAmount FieldRole = "amount"
	RoleDate   FieldRole = "date"
	RoleStatus FieldRole = "status"
	RoleLookup FieldRole = "lookup"
)

type Field struct {
	Header   string
	Role     FieldRole
	Optional bool
	// Statuses is the allow-list for RoleStatus fields.
	Statuses []string
}

// Schema describes one import kind: which headers the file must carry
// and how each field is validated and normalized.
type Schema struct {
	Kind   Kind
	Fields []Field
}

var agreementStatuses = []string{"active", "closed", "pending"}

var paymentStatuses = []string{"pending", "completed", "failed", "refunded"}

var schemas = map[Kind]Schema{
	KindAgreement: {
		Kind: KindAgreement,
		Fields: []Field{
			{Header: "Agreement Number", Role: RoleText},
			{Header: "License No", Role: RoleText},
			{Header: "full_name", Role: RoleLookup},
			{Header: "License Number", Role: RoleText, Optional: true},
			{Header: "Check-out Date", Role: RoleDate},
			{Header: "Check-in Date", Role: RoleDate},
			{Header: "Return Date", Role: RoleDate, Optional: true},
			{Header: "STATUS", Role: RoleStatus, Statuses: agreementStatuses},
		},
	},
	KindPayment: {
		Kind:   KindPayment,
		Fields: transactionFields,
	},
	KindTransaction: {
		Kind:   KindTransaction,
		Fields: transactionFields,
	},
	KindInstallment: {
		Kind: KindInstallment,
		Fields: []Field{
			{Header: "N°cheque", Role: RoleText},
			{Header: "Amount", Role: RoleAmount},
			{Header: "Date", Role: RoleDate},
			{Header: "Drawee Bank", Role: RoleText, Optional: true},
			{Header: "sold", Role: RoleAmount, Optional: true},
		},
	},
}

var transactionFields = []Field{
	{Header: "Lease_ID", Role: RoleText},
	{Header: "Customer_Name", Role: RoleLookup},
	{Header: "Amount", Role: RoleAmount},
	{Header: "License_Plate", Role: RoleText, Optional: true},
	{Header: "Vehicle", Role: RoleText, Optional: true},
	{Header: "Payment_Date", Role: RoleDate},
	{Header: "Payment_Method", Role: RoleText, Optional: true},
	{Header: "Transaction_ID", Role: RoleText, Optional: true},
	{Header: "Description", Role: RoleText, Optional: true},
	{Header: "Type", Role: RoleText, Optional: true},
	{Header: "Status", Role: RoleStatus, Statuses: paymentStatuses},
}

func SchemaFor(kind Kind) (Schema, error) {
	schema, ok := schemas[kind]
	if !ok {
		return Schema{}, ErrUnknownKind
	}
	return schema, nil
}

func (s Schema) RequiredHeaders() []string {
	headers := make([]string, 0, len(s.Fields))
	for _, field := range s.Fields {
		headers = append(headers, field.Header)
	}
	return headers
}

// MissingHeaders returns the schema headers absent from the parsed
// header row. Any missing header is a job-level fatal: the whole file
// is rejected before per-row processing starts.
func (s Schema) MissingHeaders(headers []string) []string {
	present := make(map[string]struct{}, len(headers))
	for _, header := range headers {
		present[header] = struct{}{}
	}

	var missing []string
	for _, field := range s.Fields {
		if _, ok := present[field.Header]; !ok {
			missing = append(missing, field.Header)
		}
	}
	return missing
}

// NormalizeRow validates row against the schema and returns the
// normalized field values: dates as YYYY-MM-DD, amounts as canonical
// decimal strings, statuses mapped onto the allow-list. It returns on
// the first failing field; rows are independent of each other.
func (s Schema) NormalizeRow(row Row) (map[string]string, error) {
	if !row.Valid {
		return nil, fmt.Errorf("expected %d fields, got %d", len(s.Fields), row.FieldCount)
	}

	normalized := make(map[string]string, len(s.Fields))
	for _, field := range s.Fields {
		value := row.Fields[field.Header]
		if value == "" {
			if field.Role == RoleStatus {
				normalized[field.Header] = DefaultStatus
				continue
			}
			if !field.Optional {
				return nil, fmt.Errorf("%s: missing value", field.Header)
			}
			normalized[field.Header] = ""
			continue
		}

		switch field.Role {
		case RoleDate:
			date, err := NormalizeDate(value)
			if err != nil {
				return nil, fmt.Errorf("%s: %v", field.Header, err)
			}
			normalized[field.Header] = date
		case RoleAmount:
			amount, err := NormalizeAmount(value)
			if err != nil {
				return nil, fmt.Errorf("%s: %v", field.Header, err)
			}
			normalized[field.Header] = amount.String()
		case RoleStatus:
			normalized[field.Header] = NormalizeStatus(value, field.Statuses)
		default:
			normalized[field.Header] = value
		}
	}

	return normalized, nil
}
