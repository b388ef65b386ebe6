package usecase

// Selectors locates the nodes of the documentation portal. They are trusted as given.
type Selectors struct {
	CategorySection string
	CategoryTitle   string
	Service         string
	ServicePrefix   string
	ServiceName     string
	Document        string
	DocumentNav     string
	FeedLink        string
	// HistoryLabel is the visible text of the navigation entry leading to the
	// document history page.
	HistoryLabel string
}

// DefaultSelectors returns the selectors of docs.aws.amazon.com.
func DefaultSelectors() Selectors {
	return Selectors{
		CategorySection: "#awsdocs-focus-element > main-landing-page-sections > div > div:nth-child(2) > service-category-tiles > div > awsui-cards > div > ol > li.awsui-cards-card-container",
		CategoryTitle:   "div.awsui-cards-card-header span.awsui-cards-card-header-inner h4",
		Service:         "awsdocs-service-link",
		ServicePrefix:   "a > div > span.awsdocs-service-prefix",
		ServiceName:     "a > div > span.awsdocs-service-name",
		Document:        "#awsdocs-focus-element > landing-page-sections li.awsui-cards-card-container span.awsui-cards-card-header-inner awsdocs-link",
		DocumentNav:     "nav.awsui-app-layout__navigation-landmark div.awsui-side-navigation > .awsui-side-navigation__list > li > span > a",
		FeedLink:        `awsdocs-link[label="RSS"] a`,
		HistoryLabel:    "Document History",
	}
}
