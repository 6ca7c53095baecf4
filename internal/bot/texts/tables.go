package texts

var tables = map[string]*Table{
	"uz": {
		LanguageSelection: "🌍 Tilni tanlang / Выберите язык",

		Welcome:             "👋 Xush kelibsiz, %s!\n\n🎓 USAT Universitet\nTaklif va shikoyatlar tizimi\n\nQuyidagilardan birini tanlang:",
		WelcomeRegistration: "Assalomu alaykum! Ro'yxatdan o'tish uchun ism familiyangizni kiriting:",

		Suggestion: "✏️ Taklif",
		Complaint:  "⚠️ Shikoyat",
		Back:       "🔙 Orqaga",

		EnterFullName:               "📝 Ism familiyangizni kiriting:",
		EnterPhone:                  "📱 Telefon raqamingizni kiriting (+998XXXXXXX formatida):",
		SelectCourse:                "🎓 Kursni tanlang:",
		SelectDirection:             "💻 Yo'nalishni tanlang:",
		CourseSelected:              "✅ Kurs tanlandi: %s",
		DirectionSelected:           "✅ Yo'nalish tanlandi: %s",
		RegistrationCompleting:      "🎉 Ro'yxatdan o'tish yakunlanmoqda...",
		RegistrationComplete:        "✅ Ro'yxatdan o'tish muvaffaqiyatli yakunlandi!",
		RegistrationCompleteOffline: "✅ Ro'yxatdan o'tish muvaffaqiyatli yakunlandi! (Offline rejim - ma'lumotlar keyinroq sinxronlanadi)",

		SelectCategory:  "📝 %s kategoriyasini tanlang:",
		EnterMessage:    "📝 Endi %singizni batafsil yozing (kamida 10 ta belgi):",
		MessageTooShort: "❌ Xabar juda qisqa. Kamida 10 ta belgi kiriting:",
		MessageTooLong:  "❌ Xabar juda uzun. Maksimal 1000 ta belgi:",
		MessageSpam:     "❌ Matn spam kabi ko'rinmoqda. Qaytadan yozing:",

		MessageSubmitted:        "✅ %singiz muvaffaqiyatli yuborildi!\n⏰ Holat: Ko'rib chiqilmoqda\n\nJavob 24-48 soat ichida beriladi.",
		MessageSubmittedOffline: "✅ %singiz qabul qilindi! (Offline rejim)\n\n📤 Xabar keyinroq yuboriladi.",

		ErrorOccurred:     "❌ Xatolik yuz berdi",
		InvalidName:       "❌ Ism faqat harflardan iborat bo'lishi kerak va kamida 2 ta so'zdan iborat bo'lishi kerak. Qaytadan kiriting:",
		InvalidPhone:      "❌ Telefon raqam noto'g'ri formatda. +998XXXXXXX formatida kiriting:",
		MessageError:      "❌ Xabar yuborishda xatolik yuz berdi. Qaytadan urinib ko'ring.",
		RegistrationError: "❌ Xatolik yuz berdi. Ro'yxatdan o'tish uchun ism familiyangizni kiriting:",
		MenuError:         "❌ Xatolik yuz berdi. /start buyrug'ini bosib qaytadan urinib ko'ring.",
		CallbackError:     "❌ Xatolik yuz berdi. /menu buyrug'ini bosib qaytadan urinib ko'ring.",

		HelpText: "🤖 Bot buyruqlari:\n\n/start - Botni ishga tushirish\n/help - Yordam\n/menu - Asosiy menyu\n\n📝 Bot orqali siz:\n• Takliflaringizni yuborishingiz\n• Shikoyatlaringizni bildirshingiz\n• Turli mavzular bo'yicha murojaat qilishingiz mumkin\n\nHar bir murojaat universitet ma'muriyati tomonidan ko'rib chiqiladi.",

		OfflineMode:     "⚠️ Bot hozirda offline rejimda ishlayapti. Xabarlaringiz keyinroq yuboriladi.",
		OfflineModeMenu: "⚠️ Bot hozirda offline rejimda ishlayapti.",

		NextPage: "⏩ Keyingi sahifa",
		PrevPage: "⏪ Oldingi sahifa",

		PleaseRegister: "Ro'yxatdan o'tish uchun /start buyrug'ini bosing.",
		UseMenu:        "Menyu uchun /start buyrug'ini bosing yoki quyidagi tugmalardan foydalaning.",
		AdminOnly:      "❌ Bu buyruq faqat administratorlar uchun.",

		StatusBody:           "📡 Server: %s\n📤 Navbatdagi xabarlar: %d\n👤 Sinxronlanmagan foydalanuvchilar: %d",
		StatusBackendOnline:  "🟢 onlayn",
		StatusBackendOffline: "🔴 oflayn",

		AdminStats:          "📊 Statistika\n\n👤 Foydalanuvchilar: %d\n📨 Xabarlar: %d\n",
		AdminRecentUsers:    "\n🆕 So'nggi foydalanuvchilar:\n",
		AdminRecentMessages: "\n🆕 So'nggi xabarlar:\n",
		NoUsers:             "Foydalanuvchilar yo'q",
		NoMessages:          "Xabarlar yo'q",

		TicketTypes: map[string]string{
			"suggestion": "taklif",
			"complaint":  "shikoyat",
		},
		Courses: []string{"1-kurs", "2-kurs", "3-kurs", "4-kurs"},
		Directions: map[string]string{
			"dasturiy_injiniring":   "Dasturiy injiniring",
			"kompyuter_injiniringi": "Kompyuter injiniringi",
			"bank_ishi":             "Bank ishi",
			"moliya_texnologiyalar": "Moliya va moliyaviy texnologiyalar",
			"logistika":             "Logistika",
			"iqtisodiyot":           "Iqtisodiyot",
			"buxgalteriya_hisobi":   "Buxgalteriya hisobi",
			"turizm_mehmondostlik":  "Turizm va mehmondo'stlik",
			"maktabgacha_talim":     "Maktabgacha ta'lim",
			"boshlangich_talim":     "Boshlang'ich ta'lim",
			"maxsus_pedagogika":     "Maxsus pedagogika",
			"ozbek_tili_adabiyoti":  "O'zbek tili va adabiyoti",
			"xorijiy_til_adabiyoti": "Xorijiy til va adabiyoti",
			"tarix":                 "Tarix",
			"matematika":            "Matematika",
			"psixologiya":           "Psixologiya",
			"arxitektura":           "Arxitektura",
			"ijtimoiy_ish":          "Ijtimoiy ish",
		},
		Categories: map[string]string{
			"sharoit": "🏢 Sharoit",
			"qabul":   "📝 Qabul",
			"dars":    "📚 Dars jarayoni",
			"teacher": "👨‍🏫 O'qituvchi",
			"tutor":   "🎓 Tyutor",
			"dekanat": "🏛️ Dekanat",
			"other":   "❓ Boshqa sabab",
		},
		CategoryDescriptions: map[string]string{
			"sharoit": "Bino, xonalar, jihozlar va infratuzilma bilan bog'liq masalalar",
			"qabul":   "Qabul jarayoni, hujjatlar va ro'yxatga olish masalalari",
			"dars":    "Ta'lim sifati, dars jadvali va o'quv jarayoni",
			"teacher": "Professor-o'qituvchilar bilan bog'liq masalalar",
			"tutor":   "Tyutorlar va ularning faoliyati haqida",
			"dekanat": "Ma'muriy masalalar va dekanat xizmatlari",
			"other":   "Yuqoridagi kategoriyalarga kirmaydigan boshqa masalalar",
		},
	},

	"ru": {
		LanguageSelection: "🌍 Выберите язык",

		Welcome:             "👋 Добро пожаловать, %s!\n\n🎓 USAT Университет\nСистема предложений и жалоб\n\nВыберите одно из:",
		WelcomeRegistration: "Здравствуйте! Для регистрации введите ваше имя и фамилию:",

		Suggestion: "✏️ Предложение",
		Complaint:  "⚠️ Жалоба",
		Back:       "🔙 Назад",

		EnterFullName:               "📝 Введите ваше имя и фамилию:",
		EnterPhone:                  "📱 Введите номер телефона (+998XXXXXXX формат):",
		SelectCourse:                "🎓 Выберите курс:",
		SelectDirection:             "💻 Выберите направление:",
		CourseSelected:              "✅ Курс выбран: %s",
		DirectionSelected:           "✅ Направление выбрано: %s",
		RegistrationCompleting:      "🎉 Регистрация завершается...",
		RegistrationComplete:        "✅ Регистрация успешно завершена!",
		RegistrationCompleteOffline: "✅ Регистрация успешно завершена! (Офлайн режим - данные будут синхронизированы позже)",

		SelectCategory:  "📝 Выберите категорию %s:",
		EnterMessage:    "📝 Теперь подробно опишите ваше %s (минимум 10 символов):",
		MessageTooShort: "❌ Сообщение слишком короткое. Введите минимум 10 символов:",
		MessageTooLong:  "❌ Сообщение слишком длинное. Максимум 1000 символов:",
		MessageSpam:     "❌ Текст похож на спам. Напишите заново:",

		MessageSubmitted:        "✅ Ваше %s успешно отправлено!\n⏰ Статус: На рассмотрении\n\nОтвет будет дан в течение 24-48 часов.",
		MessageSubmittedOffline: "✅ Ваше %s принято! (Офлайн режим)\n\n📤 Сообщение будет отправлено позже.",

		ErrorOccurred:     "❌ Произошла ошибка",
		InvalidName:       "❌ Имя должно содержать только буквы и состоять минимум из 2 слов. Введите заново:",
		InvalidPhone:      "❌ Неверный формат номера телефона. Введите в формате +998XXXXXXX:",
		MessageError:      "❌ Ошибка при отправке сообщения. Попробуйте еще раз.",
		RegistrationError: "❌ Произошла ошибка. Для регистрации введите ваше имя и фамилию:",
		MenuError:         "❌ Произошла ошибка. Нажмите /start и попробуйте еще раз.",
		CallbackError:     "❌ Произошла ошибка. Нажмите /menu и попробуйте еще раз.",

		HelpText: "🤖 Команды бота:\n\n/start - Запустить бота\n/help - Помощь\n/menu - Главное меню\n\n📝 Через бота вы можете:\n• Отправлять предложения\n• Подавать жалобы\n• Обращаться по различным вопросам\n\nКаждое обращение рассматривается администрацией университета.",

		OfflineMode:     "⚠️ Бот сейчас работает в офлайн режиме. Ваши сообщения будут отправлены позже.",
		OfflineModeMenu: "⚠️ Бот сейчас работает в офлайн режиме.",

		NextPage: "⏩ Следующая страница",
		PrevPage: "⏪ Предыдущая страница",

		PleaseRegister: "Нажмите /start для регистрации.",
		UseMenu:        "Нажмите /start для меню или используйте кнопки ниже.",
		AdminOnly:      "❌ Эта команда только для администраторов.",

		StatusBody:           "📡 Сервер: %s\n📤 Сообщений в очереди: %d\n👤 Несинхронизированных пользователей: %d",
		StatusBackendOnline:  "🟢 онлайн",
		StatusBackendOffline: "🔴 офлайн",

		AdminStats:          "📊 Статистика\n\n👤 Пользователи: %d\n📨 Сообщения: %d\n",
		AdminRecentUsers:    "\n🆕 Последние пользователи:\n",
		AdminRecentMessages: "\n🆕 Последние сообщения:\n",
		NoUsers:             "Нет пользователей",
		NoMessages:          "Нет сообщений",

		TicketTypes: map[string]string{
			"suggestion": "предложение",
			"complaint":  "жалоба",
		},
		Courses: []string{"1-курс", "2-курс", "3-курс", "4-курс"},
		Directions: map[string]string{
			"dasturiy_injiniring":   "Программная инженерия",
			"kompyuter_injiniringi": "Компьютерная инженерия",
			"bank_ishi":             "Банковское дело",
			"moliya_texnologiyalar": "Финансы и финансовые технологии",
			"logistika":             "Логистика",
			"iqtisodiyot":           "Экономика",
			"buxgalteriya_hisobi":   "Бухгалтерский учет",
			"turizm_mehmondostlik":  "Туризм и гостеприимство",
			"maktabgacha_talim":     "Дошкольное образование",
			"boshlangich_talim":     "Начальное образование",
			"maxsus_pedagogika":     "Специальная педагогика",
			"ozbek_tili_adabiyoti":  "Узбекский язык и литература",
			"xorijiy_til_adabiyoti": "Иностранный язык и литература",
			"tarix":                 "История",
			"matematika":            "Математика",
			"psixologiya":           "Психология",
			"arxitektura":           "Архитектура",
			"ijtimoiy_ish":          "Социальная работа",
		},
		Categories: map[string]string{
			"sharoit": "🏢 Условия",
			"qabul":   "📝 Прием",
			"dars":    "📚 Учебный процесс",
			"teacher": "👨‍🏫 Преподаватель",
			"tutor":   "🎓 Тьютор",
			"dekanat": "🏛️ Деканат",
			"other":   "❓ Другая причина",
		},
		CategoryDescriptions: map[string]string{
			"sharoit": "Вопросы, связанные со зданиями, помещениями, оборудованием и инфраструктурой",
			"qabul":   "Вопросы процесса приема, документов и регистрации",
			"dars":    "Качество образования, расписание и учебный процесс",
			"teacher": "Вопросы, связанные с профессорско-преподавательским составом",
			"tutor":   "О тьюторах и их деятельности",
			"dekanat": "Административные вопросы и услуги деканата",
			"other":   "Другие вопросы, не входящие в вышеперечисленные категории",
		},
	},
}
