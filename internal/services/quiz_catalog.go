package services

import "jainvest/internal/models"

// quizCatalog is the fixed set of quizzes offered to learners.
var quizCatalog = []models.Quiz{
	{
		ID:          "basic-investing",
		Title:       "Basic Investing Concepts",
		Description: "Test your knowledge of fundamental investing principles",
		Questions: []models.Question{
			{
				ID:       "q1",
				Question: "What is diversification in investing?",
				Options: []string{
					"Investing in only one stock",
					"Spreading investments across different assets",
					"Only buying government bonds",
					"Investing only in tech stocks",
				},
				Correct:     1,
				Explanation: "Diversification means spreading investments across different assets to reduce risk.",
			},
			{
				ID:       "q2",
				Question: "What does P/E ratio represent?",
				Options: []string{
					"Price to Earnings ratio",
					"Profit to Equity ratio",
					"Price to Expense ratio",
					"Portfolio to Earnings ratio",
				},
				Correct:     0,
				Explanation: "P/E ratio is Price to Earnings ratio, showing how much investors pay per rupee of earnings.",
			},
			{
				ID:       "q3",
				Question: "What is SIP in mutual funds?",
				Options: []string{
					"Systematic Investment Plan",
					"Strategic Investment Portfolio",
					"Systematic Insurance Plan",
					"Special Investment Product",
				},
				Correct:     0,
				Explanation: "SIP stands for Systematic Investment Plan, allowing regular investments in mutual funds.",
			},
		},
	},
	{
		ID:          "stock-analysis",
		Title:       "Stock Analysis Fundamentals",
		Description: "Learn how to analyze stocks effectively",
		Questions: []models.Question{
			{
				ID:       "q1",
				Question: "Which financial ratio measures a company's profitability?",
				Options: []string{
					"Current Ratio",
					"Debt-to-Equity Ratio",
					"Return on Equity (ROE)",
					"Quick Ratio",
				},
				Correct:     2,
				Explanation: "ROE measures how effectively a company uses shareholders' equity to generate profits.",
			},
		},
	},
}
