package core

type (
	// Profile is the business identity attached to a user account.
	Profile struct {
		OwnerName    string `json:"ownerName"`
		CompanyName  string `json:"companyName"`
		MobileNumber string `json:"mobileNumber"`
		Address      string `json:"address"`
		GSTNumber    string `json:"gstNumber,omitempty"`
		PANNumber    string `json:"panNumber,omitempty"`
	}

	// Bank holds the optional settlement account details.
	Bank struct {
		BankName          string `json:"bankName,omitempty"`
		AccountHolderName string `json:"accountHolderName,omitempty"`
		AccountNumber     string `json:"accountNumber,omitempty"`
		IFSCCode          string `json:"ifscCode,omitempty"`
		BankBranchName    string `json:"bankBranchName,omitempty"`
	}

	// User is the authenticated account as served by the backend and
	// cached locally between revalidations.
	User struct {
		ID        string  `json:"id"`
		UniqueID  string  `json:"uniqueid"`
		Email     string  `json:"email"`
		Profile   Profile `json:"profile"`
		Bank      *Bank   `json:"bank,omitempty"`
		Role      string  `json:"role"`
		IsActive  bool    `json:"isActive"`
		LastLogin Date    `json:"lastLogin,omitempty"`
		CreatedAt Date    `json:"createdAt,omitempty"`
		UpdatedAt Date    `json:"updatedAt,omitempty"`
	}
)
