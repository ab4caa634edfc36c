package model

// Package model contains the domain types shared by the HTTP, service, and
// persistence layers. No business logic here.

// Cover-page defaults applied to new RFPs and to new user accounts.
const (
	DefaultCompanyName  = "GovCon AI"
	DefaultDocumentType = "Proposal"
)
