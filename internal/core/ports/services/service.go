package services

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used throughout the application, particularly in the handlers.
type ServiceContainer struct {
	Company     CompanySvcFacade
	CostCenter  CostCenterSvcFacade
	Concept     ConceptSvcFacade
	Expense     ExpenseSvcFacade
	Fund        FundSvcFacade
	User        UserSvcFacade
	Currency    CurrencySvcFacade
	Token       TokenSvcFacade
	GoogleOAuth GoogleOAuthHandlerSvcFacade
	Reporting   ReportingSvcFacade
	Document    DocumentSvcFacade
}
