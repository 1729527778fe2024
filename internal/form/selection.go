package form

// BankDraft holds the inline new-bank sub-form fields
type BankDraft struct {
	Name     string
	BankCode string
}

// AffiliateDraft holds the inline new-affiliate sub-form fields
type AffiliateDraft struct {
	FirstName       string
	SecondName      string
	PaternalSurname string
	MaternalSurname string
	IdentityCard    string
}

// BankSelection is a tagged union: either a reference to an existing bank
// or a draft for one to be registered during submission
type BankSelection struct {
	isNew      bool
	existingID int64
	draft      BankDraft
}

// ExistingBank selects a bank by id. Zero means "nothing selected yet".
func ExistingBank(id int64) BankSelection {
	return BankSelection{existingID: id}
}

// NewBank selects inline registration with the given draft
func NewBank(draft BankDraft) BankSelection {
	return BankSelection{isNew: true, draft: draft}
}

// IsNew reports whether the selection is an inline draft
func (s BankSelection) IsNew() bool { return s.isNew }

// ExistingID returns the selected bank id (zero when none or when IsNew)
func (s BankSelection) ExistingID() int64 { return s.existingID }

// Draft returns the inline draft fields
func (s BankSelection) Draft() BankDraft { return s.draft }

// AffiliateSelection is the affiliate counterpart of BankSelection
type AffiliateSelection struct {
	isNew      bool
	existingID int64
	draft      AffiliateDraft
}

// ExistingAffiliate selects an affiliate by id. Zero means "nothing selected yet".
func ExistingAffiliate(id int64) AffiliateSelection {
	return AffiliateSelection{existingID: id}
}

// NewAffiliate selects inline registration with the given draft
func NewAffiliate(draft AffiliateDraft) AffiliateSelection {
	return AffiliateSelection{isNew: true, draft: draft}
}

// IsNew reports whether the selection is an inline draft
func (s AffiliateSelection) IsNew() bool { return s.isNew }

// ExistingID returns the selected affiliate id (zero when none or when IsNew)
func (s AffiliateSelection) ExistingID() int64 { return s.existingID }

// Draft returns the inline draft fields
func (s AffiliateSelection) Draft() AffiliateDraft { return s.draft }
