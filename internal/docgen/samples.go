package docgen

// Sample document bodies (Bulgarian office texts) used to seed the input
// directory for manual testing of the sorter.

var invoiceSamples = []string{
	"Фактура за предоставените услуги по проект XYZ. Общо за плащане: 1500 лв.",
	"Фактура за консултантски услуги предоставени през месец май 2023 г. Сума: 2500 лв.",
	"Фактура за ремонтни услуги извършени на 12.06.2023 г. Общо за плащане: 450 лв.",
	"Фактура за транспортни услуги, предоставени през месец юни 2023 г. Сума: 1200 лв.",
}

var protocolSamples = []string{
	"Протокол от проведеното заседание на управителния съвет на фирма ABC на 15.09.2023 г. " +
		"Дискутирани теми: нови проекти, бъдещи инвестиции и пазарни стратегии.",
	"Протокол от заседание на екип за развитие на продукта, проведено на 20.11.2023 г. " +
		"Решени задачи: оптимизация на текущия код и план за нови функции.",
	"Протокол от заседание на комисията за подбор на нови служители, проведено на 01.12.2023 г. " +
		"Дискутирани кандидати за позицията мениджър продажби.",
}

var reportSamples = []string{
	"Годишен отчет за финансовото състояние на фирма XYZ за 2023 г. " +
		"Приходи: 1 000 000 лв., разходи: 800 000 лв.",
	"Отчет за изпълнение на проект 'Анализ на пазара' през второто тримесечие на 2024 г. " +
		"Резултати: успешно завършени 3 ключови етапа.",
	"Отчет за текущото състояние на проекта за изграждане на нов офис сграда. " +
		"Завършени етапи: основи, стени, покрив.",
}
