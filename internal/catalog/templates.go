package catalog

import (
	"github.com/hidrocoding/cotizador/internal/domain"
	"github.com/hidrocoding/cotizador/internal/money"
)

var templates = []Template{
	{
		ID:          "web-001",
		Name:        "Diseño Web Responsivo",
		Description: "Diseño personalizado para escritorio, tabletas y móviles con identidad visual profesional",
		Category:    domain.CategoryWebDev,
		BasePrice:   money.FromInt(8000),
		Unit:        domain.UnitProject,
		Duration:    "1-2 semanas",
		Tags:        []string{"diseño", "responsive", "UI/UX"},
	},
	{
		ID:          "web-002",
		Name:        "Desarrollo Frontend Moderno",
		Description: "Desarrollo con React/Vue/Angular, HTML5, CSS3, JavaScript con animaciones y efectos interactivos",
		Category:    domain.CategoryWebDev,
		BasePrice:   money.FromInt(12000),
		Unit:        domain.UnitProject,
		Duration:    "2-3 semanas",
		Tags:        []string{"react", "frontend", "javascript"},
	},
	{
		ID:          "web-003",
		Name:        "Landing Page Profesional",
		Description: "Página de aterrizaje optimizada para conversión con formularios y analytics",
		Category:    domain.CategoryWebDev,
		BasePrice:   money.FromInt(5000),
		Unit:        domain.UnitProject,
		Duration:    "1 semana",
		Tags:        []string{"landing", "marketing", "conversión"},
	},
	{
		ID:          "web-004",
		Name:        "Sitio Web Corporativo",
		Description: "Sitio web empresarial completo con múltiples secciones, blog y formularios de contacto",
		Category:    domain.CategoryWebDev,
		BasePrice:   money.FromInt(20000),
		Unit:        domain.UnitProject,
		Duration:    "3-4 semanas",
		Tags:        []string{"corporativo", "cms", "blog"},
	},
	{
		ID:          "web-005",
		Name:        "E-commerce Completo",
		Description: "Tienda en línea con catálogo de productos, carrito, pasarela de pago y panel de administración",
		Category:    domain.CategoryWebDev,
		BasePrice:   money.FromInt(35000),
		Unit:        domain.UnitProject,
		Duration:    "6-8 semanas",
		Tags:        []string{"ecommerce", "tienda", "pagos"},
	},
	{
		ID:          "mov-001",
		Name:        "App Móvil Híbrida",
		Description: "Aplicación móvil con React Native o Flutter para iOS y Android",
		Category:    domain.CategoryMobileDev,
		BasePrice:   money.FromInt(40000),
		Unit:        domain.UnitProject,
		Duration:    "8-10 semanas",
		Tags:        []string{"mobile", "react-native", "flutter"},
	},
	{
		ID:          "mov-002",
		Name:        "App Móvil Nativa",
		Description: "Aplicación nativa para iOS (Swift) o Android (Kotlin)",
		Category:    domain.CategoryMobileDev,
		BasePrice:   money.FromInt(50000),
		Unit:        domain.UnitProject,
		Duration:    "10-12 semanas",
		Tags:        []string{"ios", "android", "nativo"},
	},
	{
		ID:          "dis-001",
		Name:        "Diseño de Identidad Visual",
		Description: "Logotipo, paleta de colores, tipografía y guía de estilo de marca",
		Category:    domain.CategoryDesign,
		BasePrice:   money.FromInt(8000),
		Unit:        domain.UnitProject,
		Duration:    "2-3 semanas",
		Tags:        []string{"branding", "logo", "identidad"},
	},
	{
		ID:          "dis-002",
		Name:        "Diseño UI/UX",
		Description: "Diseño de interfaz y experiencia de usuario con prototipos interactivos",
		Category:    domain.CategoryDesign,
		BasePrice:   money.FromInt(10000),
		Unit:        domain.UnitProject,
		Duration:    "2-3 semanas",
		Tags:        []string{"ui", "ux", "figma"},
	},
	{
		ID:          "con-001",
		Name:        "Consultoría Tecnológica",
		Description: "Asesoría técnica, arquitectura de software y estrategia digital",
		Category:    domain.CategoryConsulting,
		BasePrice:   money.FromInt(2000),
		Unit:        domain.UnitHour,
		Tags:        []string{"asesoría", "arquitectura", "estrategia"},
	},
	{
		ID:          "con-002",
		Name:        "Auditoría de Código",
		Description: "Revisión exhaustiva de código, seguridad y mejores prácticas",
		Category:    domain.CategoryConsulting,
		BasePrice:   money.FromInt(8000),
		Unit:        domain.UnitProject,
		Duration:    "1 semana",
		Tags:        []string{"auditoría", "código", "seguridad"},
	},
	{
		ID:          "man-001",
		Name:        "Mantenimiento Web Mensual",
		Description: "Soporte técnico, actualizaciones, respaldo y monitoreo continuo",
		Category:    domain.CategoryMaintenance,
		BasePrice:   money.FromInt(3000),
		Unit:        domain.UnitMonth,
		Tags:        []string{"soporte", "actualizaciones", "respaldo"},
	},
	{
		ID:          "man-002",
		Name:        "Mantenimiento Anual Premium",
		Description: "Soporte técnico prioritario, respaldo diario, actualizaciones y mejoras continuas",
		Category:    domain.CategoryMaintenance,
		BasePrice:   money.FromInt(30000),
		Unit:        domain.UnitProject,
		Duration:    "12 meses",
		Tags:        []string{"premium", "anual", "24/7"},
	},
	{
		ID:          "hos-001",
		Name:        "Hosting Compartido",
		Description: "Alojamiento web compartido con SSL, email y panel de control",
		Category:    domain.CategoryHosting,
		BasePrice:   money.FromInt(800),
		Unit:        domain.UnitMonth,
		Tags:        []string{"hosting", "ssl", "cpanel"},
	},
	{
		ID:          "hos-002",
		Name:        "Hosting VPS",
		Description: "Servidor virtual privado con recursos dedicados y mayor control",
		Category:    domain.CategoryHosting,
		BasePrice:   money.FromInt(2500),
		Unit:        domain.UnitMonth,
		Tags:        []string{"vps", "dedicado", "escalable"},
	},
	{
		ID:          "hos-003",
		Name:        "Registro de Dominio",
		Description: "Registro de dominio .com, .mx u otros TLD por 1 año",
		Category:    domain.CategoryHosting,
		BasePrice:   money.FromInt(500),
		Unit:        domain.UnitProject,
		Duration:    "1 año",
		Tags:        []string{"dominio", "registro", "dns"},
	},
	{
		ID:          "seg-001",
		Name:        "Implementación de SSL",
		Description: "Certificado SSL/TLS para sitio web seguro (HTTPS)",
		Category:    domain.CategorySecurity,
		BasePrice:   money.FromInt(1500),
		Unit:        domain.UnitProject,
		Duration:    "1 día",
		Tags:        []string{"ssl", "https", "seguridad"},
	},
	{
		ID:          "seg-002",
		Name:        "Análisis de Vulnerabilidades",
		Description: "Escaneo y análisis de vulnerabilidades de seguridad con reporte detallado",
		Category:    domain.CategorySecurity,
		BasePrice:   money.FromInt(6000),
		Unit:        domain.UnitProject,
		Duration:    "1 semana",
		Tags:        []string{"pentesting", "vulnerabilidades", "análisis"},
	},
	{
		ID:          "db-001",
		Name:        "Diseño de Base de Datos",
		Description: "Modelado y diseño de base de datos relacional o NoSQL",
		Category:    domain.CategoryDatabase,
		BasePrice:   money.FromInt(5000),
		Unit:        domain.UnitProject,
		Duration:    "1-2 semanas",
		Tags:        []string{"database", "sql", "modelado"},
	},
	{
		ID:          "db-002",
		Name:        "Optimización de Base de Datos",
		Description: "Análisis y optimización de consultas, índices y rendimiento",
		Category:    domain.CategoryDatabase,
		BasePrice:   money.FromInt(4000),
		Unit:        domain.UnitProject,
		Duration:    "1 semana",
		Tags:        []string{"optimización", "performance", "queries"},
	},
	{
		ID:          "int-001",
		Name:        "Integración de Pasarela de Pago",
		Description: "Integración con Stripe, PayPal, Mercado Pago u otras pasarelas",
		Category:    domain.CategoryIntegration,
		BasePrice:   money.FromInt(4000),
		Unit:        domain.UnitProject,
		Duration:    "1 semana",
		Tags:        []string{"pagos", "stripe", "paypal"},
	},
	{
		ID:          "int-002",
		Name:        "Integración OpenTable",
		Description: "Sistema de reservaciones en línea integrado con OpenTable",
		Category:    domain.CategoryIntegration,
		BasePrice:   money.FromInt(3500),
		Unit:        domain.UnitProject,
		Duration:    "1 semana",
		Tags:        []string{"reservaciones", "opentable", "api"},
	},
	{
		ID:          "int-003",
		Name:        "Integración API Personalizada",
		Description: "Desarrollo e integración de API REST o GraphQL",
		Category:    domain.CategoryIntegration,
		BasePrice:   money.FromInt(6000),
		Unit:        domain.UnitProject,
		Duration:    "1-2 semanas",
		Tags:        []string{"api", "rest", "graphql"},
	},
	{
		ID:          "int-004",
		Name:        "Integración CRM",
		Description: "Integración con sistemas CRM como Salesforce, HubSpot o Zoho",
		Category:    domain.CategoryIntegration,
		BasePrice:   money.FromInt(5000),
		Unit:        domain.UnitProject,
		Duration:    "1-2 semanas",
		Tags:        []string{"crm", "salesforce", "hubspot"},
	},
	{
		ID:          "seo-001",
		Name:        "Optimización SEO Completa",
		Description: "Meta etiquetas, sitemap, robots.txt, schema markup y optimización de velocidad",
		Category:    domain.CategoryOther,
		BasePrice:   money.FromInt(4000),
		Unit:        domain.UnitProject,
		Duration:    "1-2 semanas",
		Tags:        []string{"seo", "optimización", "google"},
	},
	{
		ID:          "seo-002",
		Name:        "Configuración de Analytics",
		Description: "Implementación de Google Analytics, Tag Manager y seguimiento de conversiones",
		Category:    domain.CategoryOther,
		BasePrice:   money.FromInt(2000),
		Unit:        domain.UnitProject,
		Duration:    "2-3 días",
		Tags:        []string{"analytics", "tracking", "conversiones"},
	},
	{
		ID:          "multi-001",
		Name:        "Sistema Multilingüe",
		Description: "Implementación de sistema de traducción y cambio de idioma",
		Category:    domain.CategoryWebDev,
		BasePrice:   money.FromInt(3000),
		Unit:        domain.UnitProject,
		Duration:    "1 semana",
		Tags:        []string{"i18n", "traducción", "idiomas"},
	},
}
