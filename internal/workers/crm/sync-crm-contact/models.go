// internal/workers/crm/sync-crm-contact/models.go
package synccrmcontact

// Input identifies the platform user to sync. Either userId or email is
// required; company fields are pushed onto the CRM record when present.
type Input struct {
	UserID      string `json:"userId,omitempty"`
	Email       string `json:"email,omitempty"`
	CompanyName string `json:"companyName,omitempty"`
	UEI         string `json:"uei,omitempty"`
	Phone       string `json:"phone,omitempty"`
	LeadSource  string `json:"leadSource,omitempty"`
}

type Output struct {
	ContactID string `json:"crmContactId"`
	Action    string `json:"crmAction"`
	Synced    bool   `json:"crmSynced"`
}
