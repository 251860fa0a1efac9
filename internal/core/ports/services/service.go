package services

// ServiceContainer holds all service facades needed by the handler layer.
type ServiceContainer struct {
	Application ApplicationSvcFacade
	Slot        SlotSvcFacade
	Match       MatchSvcFacade
	Interview   InterviewSvcFacade
	Journal     JournalSvcFacade
	Offer       OfferSvcFacade
	Reporting   ReportingSvcFacade
	Authorizer  AuthorizerSvc
}
