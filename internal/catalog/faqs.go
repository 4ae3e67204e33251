package catalog

func defaultFAQs() []FAQ {
	return []FAQ{
		{
			Key:      "como_llegar",
			Question: "¿Cómo llegar a la clínica?",
			Answer: "Estamos en Av. Libertador 1234, CABA. Puede llegar en:\n" +
				"- Colectivos: 10, 37, 59, 60, 93, 130, 152\n" +
				"- Subte: Línea D, estación Palermo, a 5 cuadras\n" +
				"- Tren: Estación Palermo, a 8 cuadras\n" +
				"Contamos con estacionamiento para pacientes.",
			Keywords: []string{"llegar", "donde", "direccion", "ubicacion", "transporte", "colectivo", "subte"},
		},
		{
			Key:      "retirar_resultados",
			Question: "¿Cómo retirar resultados de estudios?",
			Answer: "Puede retirar sus resultados de dos formas:\n" +
				"1. Presencial: En recepción con su DNI, de lunes a viernes de 8:00 a 20:00\n" +
				"2. Por email: Los resultados se envían automáticamente al correo registrado en 24-48hs\n" +
				"Para resultados de laboratorio: 48-72hs hábiles.",
			Keywords: []string{"resultados", "retirar", "laboratorio", "estudios", "analisis"},
		},
		{
			Key:      "urgencias",
			Question: "¿Atienden urgencias?",
			Answer: "No contamos con servicio de guardia. Para urgencias, recomendamos acudir al " +
				"Hospital Fernández (Av. Cerviño 3356) o al Hospital Rivadavia (Av. Gral. Las Heras 2670), " +
				"ambos con guardia 24hs.",
			Keywords: []string{"urgencia", "emergencia", "guardia", "grave"},
		},
		{
			Key:      "formas_pago",
			Question: "¿Qué formas de pago aceptan?",
			Answer: "Aceptamos:\n" +
				"- Efectivo\n" +
				"- Tarjetas de débito y crédito (Visa, Mastercard, American Express)\n" +
				"- Transferencias bancarias (CBU disponible en recepción)\n" +
				"- Mercado Pago\n" +
				"- Para consultas particulares: planes de pago en 3 cuotas sin interés.",
			Keywords: []string{"pago", "tarjeta", "efectivo", "transferencia", "precio", "costo"},
		},
		{
			Key:      "primera_vez",
			Question: "¿Qué debo llevar si es mi primera vez?",
			Answer: "Por favor traiga:\n" +
				"- DNI original\n" +
				"- Credencial de obra social o prepaga (si corresponde)\n" +
				"- Orden médica (si fue derivado)\n" +
				"- Estudios previos relacionados con la consulta\n" +
				"- Llegue 10 minutos antes para completar la ficha médica.",
			Keywords: []string{"primera vez", "nuevo paciente", "que llevar", "que traer"},
		},
		{
			Key:      "cancelar_turno",
			Question: "¿Cómo cancelo o reagendo un turno?",
			Answer: "Puede cancelar o reagendar llamando al (011) 4567-8900 o por WhatsApp al mismo número. " +
				"Le pedimos avisar con al menos 24hs de anticipación para que otro paciente pueda tomar ese horario.",
			Keywords: []string{"cancelar", "reagendar", "cambiar turno", "modificar"},
		},
		{
			Key:      "recetas_certificados",
			Question: "¿Puedo pedir recetas o certificados sin turno?",
			Answer: "Los certificados y recetas deben ser solicitados en consulta con el médico. " +
				"Si necesita una renovación de receta y es paciente regular, puede solicitarla por WhatsApp " +
				"y retirarla en 48hs (sujeto a aprobación médica).",
			Keywords: []string{"receta", "certificado", "prescripcion"},
		},
	}
}
